package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/novadecore/personal-blog/internal/core/auth"
	"github.com/novadecore/personal-blog/internal/core/cache"
	"github.com/novadecore/personal-blog/internal/core/config"
	"github.com/novadecore/personal-blog/internal/core/database"
	"github.com/novadecore/personal-blog/internal/core/logger"
	"github.com/novadecore/personal-blog/internal/core/server"
	"github.com/novadecore/personal-blog/internal/domain"
	"github.com/novadecore/personal-blog/internal/repo"
	"github.com/novadecore/personal-blog/internal/service"
	"github.com/novadecore/personal-blog/internal/storage"
	"github.com/novadecore/personal-blog/internal/transport/http/handler"
	"github.com/novadecore/personal-blog/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 数据库（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{}, &domain.Profile{},
			&domain.Post{}, &domain.Image{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// JWT（单一进程级密钥，无轮换）
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenHour) * time.Hour,
	}

	// 公共读缓存（可选）
	var rc *cache.Cache
	if cfg.Redis.Addr != "" {
		rc = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// 对象存储（可选；未配置时上传接口报 500）
	var store storage.ObjectStorage
	if cfg.Storage.Endpoint != "" {
		s, err := storage.NewMinIO(cfg.Storage)
		if err != nil {
			log.Fatal("object storage init", zap.Error(err))
		}
		store = s
		log.Info("object storage ready", zap.String("endpoint", cfg.Storage.Endpoint))
	} else {
		log.Warn("object storage not configured, image upload disabled")
	}

	// 依赖装配
	userRepo := repo.NewUserRepo(db)
	postRepo := repo.NewPostRepo(db)
	profileRepo := repo.NewProfileRepo(db)

	acctSvc := service.NewAccountService(userRepo, jwter)
	postSvc := service.NewAuthoringService(postRepo, rc, time.Duration(cfg.Redis.PostTTLSec)*time.Second)
	profSvc := service.NewProfileService(profileRepo)

	h := &handler.Handlers{
		Auth:    handler.NewAuthHandler(acctSvc, cfg),
		Posts:   handler.NewPostHandler(postSvc),
		Profile: handler.NewProfileHandler(profSvc),
		Upload:  handler.NewUploadHandler(store),
	}

	r := router.NewAPIEngine(log, cfg, jwter, h)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("blog api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("blog api start FAILED", zap.Error(err))
		}
	}()
	log.Info("blog api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("blog api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

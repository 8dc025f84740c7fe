package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/novadecore/personal-blog/internal/core/auth"
	"github.com/novadecore/personal-blog/internal/core/config"
	"github.com/novadecore/personal-blog/internal/transport/http/handler"
	mdw "github.com/novadecore/personal-blog/internal/transport/http/middleware"
)

func NewAPIEngine(l *zap.Logger, cfg *config.Config, jwter *auth.JWTer, h *handler.Handlers) *gin.Engine {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)
	r.Use(corsFor(cfg))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 公共读路径，不要求登录
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/posts", h.Posts.List)
	api.GET("/posts/:id", h.Posts.Get)

	// 鉴权分组：归属校验的写路径 + 身份读取
	authed := api.Group("")
	authed.Use(mdw.Auth(jwter))
	authed.GET("/auth/me", h.Auth.Me)
	authed.POST("/posts", h.Posts.Create)
	authed.PUT("/posts/:id", h.Posts.Update)
	authed.DELETE("/posts/:id", h.Posts.Delete)
	authed.GET("/profile/me", h.Profile.Me)
	authed.PUT("/profile", h.Profile.Put)
	authed.POST("/upload/image", h.Upload.Image)

	return r
}

// corsFor cookie 凭证要求不能用通配 origin
func corsFor(cfg *config.Config) gin.HandlerFunc {
	if cfg.App.FrontendURL == "" {
		return cors.Default()
	}
	c := cors.DefaultConfig()
	c.AllowOrigins = []string{cfg.App.FrontendURL}
	c.AllowCredentials = true
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	return cors.New(c)
}

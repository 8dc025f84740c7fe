package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name        string
	Env         string // "dev" / "prod"
	FrontendURL string
	HTTP        HTTP
}

type Log struct {
	Level string
	JSON  bool
}

type JWT struct {
	Secret          string
	Issuer          string
	AccessTokenHour int
}

type Cookie struct {
	// prod 下 Secure + SameSite=None（跨站前端），否则 Lax
	MaxAgeDays int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// 公共读缓存 TTL，0 关闭
	PostTTLSec int `mapstructure:"post_ttl_sec"`
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Storage struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string // 返回给前端的 URL 前缀
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	Cookie  Cookie
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	Storage Storage
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	if c.JWT.AccessTokenHour <= 0 {
		c.JWT.AccessTokenHour = 12
	}
	if c.Cookie.MaxAgeDays <= 0 {
		c.Cookie.MaxAgeDays = 7
	}
	return &c
}

func (c *Config) IsProd() bool { return c.App.Env == "prod" }

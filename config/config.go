package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config 应用配置
type Config struct {
	Addr        string `envconfig:"ADDR" default:":8082"`
	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"agora:agora@tcp(127.0.0.1:3306)/agora?charset=utf8mb4&parseTime=True&loc=UTC"`
	JWTSecret   string `envconfig:"JWT_SECRET" default:"dev-secret-key-change-in-production"`
	TokenTTL    int    `envconfig:"TOKEN_TTL_HOURS" default:"72"` // token 有效期（小时）
}

// Load 读取 .env 和环境变量
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

package main

import (
	"log"

	"agora-market/config"
	"agora-market/models"
	"agora-market/routes"
	"agora-market/services"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	if err := config.InitDB(cfg.DatabaseDSN); err != nil {
		logger.Fatal("Failed to connect database", zap.Error(err))
	}
	// 自动迁移
	if err := models.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	services.InitAuth(cfg.JWTSecret, cfg.TokenTTL)

	// 实时消息中枢，启动时创建并注入各处
	store := services.NewGormMessageStore(config.DB)
	hub := services.NewHub(store, logger)

	// 注册路由
	r := routes.RegisterRoutes(hub)

	// 启动服务
	logger.Info("Server starting", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("Server failed to start", zap.Error(err))
	}
}

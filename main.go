package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickbite/configs"
	"quickbite/middlewares"
	"quickbite/notifications"
	"quickbite/pkg/cache"
	"quickbite/pkg/gateway"
	"quickbite/pkg/logger"
	"quickbite/routes"
)

func main() {
	cfg := configs.LoadConfig()

	zl, err := logger.New(cfg.Mode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	db, err := configs.ConnectDB(cfg)
	if err != nil {
		zl.Fatal("connect database", zap.Error(err))
	}
	if err := configs.SetupDatabase(db); err != nil {
		zl.Fatal("migrate database", zap.Error(err))
	}
	if err := configs.SeedAdmin(db); err != nil {
		zl.Fatal("seed admin", zap.Error(err))
	}

	gw := gateway.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, zl)

	var sender notifications.Sender = notifications.NoopSender{}
	if cfg.SMTPHost != "" {
		sender = notifications.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	store := cache.New(cfg.RedisAddr)

	if cfg.Mode != "development" && cfg.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, db, cfg, gw, sender, store, zl)

	zl.Info("server listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gen912/WeWear/config"
	"github.com/Gen912/WeWear/controller"
	"github.com/Gen912/WeWear/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	h := controller.NewHandler(cfg, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.SetupCORS())
	r.Use(middleware.RequestLogger(logger))

	h.RegisterRoutes(r)

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photobooth/internal/auth"
	"photobooth/internal/config"
	"photobooth/internal/infrastructure/logger"
	"photobooth/internal/photo"
	"photobooth/internal/server"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	authority := auth.NewStaticProvider()
	if err := authority.AddUser(cfg.Auth.AdminUser, cfg.Auth.AdminPassword, "admin"); err != nil {
		zapLogger.Fatal("registering admin user", zap.Error(err))
	}
	if err := authority.AddUser(cfg.Auth.StaffUser, cfg.Auth.StaffPassword, "staff"); err != nil {
		zapLogger.Fatal("registering staff user", zap.Error(err))
	}

	photoCtrl := photo.NewModule(cfg, authority, zapLogger)

	router := server.NewRouter(photoCtrl, cfg.Server.AllowedOrigins, zapLogger)
	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

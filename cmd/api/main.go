package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sanchezegido/recipedia/config"
	"github.com/sanchezegido/recipedia/internal/database"
	"github.com/sanchezegido/recipedia/internal/logging"
	"github.com/sanchezegido/recipedia/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, config.IsProduction())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	deps := server.Deps{DB: db, Logger: logger}
	if cfg.CacheDriver == config.CacheRedis {
		client, err := database.NewRedisClient(cfg, logger)
		if err != nil {
			// The cache and the rate limiter both degrade without Redis
			logger.Warn("continuing without redis", zap.Error(err))
		} else {
			defer func(c *redis.Client) { _ = c.Close() }(client)
			deps.Redis = client
		}
	}

	srv, err := server.New(cfg, deps)
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	logger.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}

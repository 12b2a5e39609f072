package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"projectboard/internal/config"
	"projectboard/internal/handler"
	"projectboard/internal/httpserver"
	"projectboard/internal/repository"
	"projectboard/internal/service/auth"
	"projectboard/internal/service/stats"
	"projectboard/pkg/db"
	"projectboard/pkg/logger"
	"projectboard/pkg/mq"
	"projectboard/pkg/redis"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := logger.NewLogger()
	defer logg.Sync()

	logg.Info("Starting projectboard server",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("port", cfg.Server.Port),
	)

	dbConn, err := db.NewConnection(cfg.DB, logg)
	if err != nil {
		logg.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repository.EnsureSchema(schemaCtx, dbConn, logg); err != nil {
		schemaCancel()
		logg.Fatal("Failed to ensure schema", zap.Error(err))
	}
	schemaCancel()

	projectRepo := repository.NewProjectRepository(dbConn, logg)
	taskRepo := repository.NewTaskRepository(dbConn, logg)

	// Optional list cache.
	rdb := redis.NewClient(cfg.Redis)
	listCache := handler.NewListCache(rdb, cfg.ListCacheTTL(), logg)
	if rdb != nil {
		defer rdb.Close()
		logg.Info("List cache enabled", zap.String("redis_addr", cfg.Redis.Addr))
	}

	// Optional change-event publisher.
	var events handler.EventPublisher
	if cfg.MQ.URL != "" {
		publisher, err := mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			logg.Fatal("Failed to init MQ publisher", zap.Error(err))
		}
		defer publisher.Close()
		events = publisher
		logg.Info("Change-event publisher enabled", zap.String("exchange", mq.ExchangeName))
	}

	authService := auth.NewService(cfg.JWT.Secret)

	projectHandler := handler.NewProjectHandler(projectRepo, listCache, events, logg)
	taskHandler := handler.NewTaskHandler(taskRepo, listCache, events, logg)
	authHandler := handler.NewAuthHandler(authService, logg)

	refresher := stats.NewRefresher(projectRepo, logg)
	if err := refresher.Start(); err != nil {
		logg.Fatal("Failed to start stats refresher", zap.Error(err))
	}
	defer refresher.Stop()

	router := httpserver.NewRouter(projectHandler, taskHandler, authHandler, logg, dbConn)

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logg.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		logg.Info("HTTP server stopped")
	}

	logg.Info("Server shutdown complete")
}

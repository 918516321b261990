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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"equipment-tracker-backend/config"
	"equipment-tracker-backend/internal/api"
	"equipment-tracker-backend/internal/notification"
	"equipment-tracker-backend/internal/service"
	"equipment-tracker-backend/internal/store"
	"equipment-tracker-backend/pkg/logger"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	baseLogger := logger.Must(logger.New(os.Getenv("LOG_LEVEL")))
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		baseLogger.Fatal("failed to load configuration", zap.String("path", configPath), zap.Error(err))
	}
	baseLogger.Info("configuration loaded",
		zap.String("path", configPath),
		zap.String("backend", cfg.Storage.Backend))

	appStore, err := store.Open(cfg)
	if err != nil {
		baseLogger.Fatal("failed to open store", zap.Error(err))
	}
	defer func() {
		if err := appStore.Close(); err != nil {
			baseLogger.Error("failed to close store", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var events service.EventDispatcher
	var workerPool *notification.WorkerPool
	if cfg.Events.NATSURL != "" {
		publisher, err := notification.NewNATSPublisher(cfg.Events.NATSURL, logger.Named(baseLogger, "nats"))
		if err != nil {
			baseLogger.Fatal("failed to connect to nats", zap.String("url", cfg.Events.NATSURL), zap.Error(err))
		}
		defer publisher.Close()

		workerPool = notification.NewWorkerPool(cfg.WorkerPool.Size, publisher, cfg.Events.Subject, logger.Named(baseLogger, "events"))
		workerPool.Start(ctx)
		events = workerPool
		baseLogger.Info("change events enabled", zap.String("subject", cfg.Events.Subject))
	} else {
		baseLogger.Info("nats url not configured, change events disabled")
	}

	svc := service.NewService(appStore, events, logger.Named(baseLogger, "service"))

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(svc, cfg.Server, baseLogger)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		baseLogger.Info("http server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	baseLogger.Info("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}

	// Workers drain the queue once cancelled; wait before the publisher closes.
	cancel()
	if workerPool != nil {
		workerPool.Wait()
	}

	baseLogger.Info("server gracefully stopped")
}

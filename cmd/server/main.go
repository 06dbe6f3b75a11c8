package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/airsight/pm25-forecast/internal/adapter/http"
	kafkaadapter "github.com/airsight/pm25-forecast/internal/adapter/kafka"
	"github.com/airsight/pm25-forecast/internal/config"
	"github.com/airsight/pm25-forecast/internal/model"
	"github.com/airsight/pm25-forecast/internal/observability"
	"github.com/airsight/pm25-forecast/internal/predict"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Load the model once at startup. A failure is non-fatal: the service
	// starts degraded, reports not-ready, and recovers only through an
	// explicit reload request.
	store := model.NewStore(cfg.ModelPath, cfg.PredictionCacheSize, logger)
	if err := store.Load(); err != nil {
		logger.Warn("starting without a model; prediction disabled until reload", "path", cfg.ModelPath)
	}
	if store.Loaded() {
		metrics.ModelLoaded.Set(1)
	}

	// Audit publishing is feature-flagged via KAFKA_ENABLED.
	var publisher predict.AuditPublisher
	var auditWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		auditWriter = kafkaadapter.NewWriter(cfg, logger)
		publisher = auditWriter
		logger.Info("audit publishing enabled", "topic", cfg.KafkaAuditTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("audit publishing disabled")
	}

	service := predict.New(store, publisher, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, service, store, store, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if auditWriter != nil {
		if err := auditWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

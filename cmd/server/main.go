package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/mockid/internal/config"
	"github.com/JonMunkholm/mockid/internal/core"
	"github.com/JonMunkholm/mockid/internal/logging"
	"github.com/JonMunkholm/mockid/internal/metrics"
	"github.com/JonMunkholm/mockid/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration", "config", cfg.String())

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"dataset_source", cfg.Dataset.Source,
		"max_concurrent_scans", cfg.Query.MaxConcurrentScans,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Load the snapshot; the store is immutable from here on
	ctx := context.Background()
	records, err := core.LoadSource(ctx, cfg)
	if err != nil {
		slog.Error("failed to load dataset", "source", cfg.Dataset.Source, "error", err)
		os.Exit(1)
	}

	store, err := core.NewStore(records)
	if err != nil {
		slog.Error("invalid dataset", "error", err, "code", core.MapError(err).Code)
		os.Exit(1)
	}
	slog.Info("dataset loaded", "source", cfg.Dataset.Source, "records", store.Size())

	m := metrics.New(prometheus.DefaultRegisterer)
	service := core.NewService(store, cfg, m)
	server := web.NewServer(service, cfg, m, promhttp.Handler())

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := service.ScanStatus(); status.Active > 0 {
			slog.Info("waiting for scans to complete", "active", status.Active)
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}

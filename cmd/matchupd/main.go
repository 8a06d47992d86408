package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MikeSquared-Agency/Matchup/internal/api"
	"github.com/MikeSquared-Agency/Matchup/internal/broker"
	"github.com/MikeSquared-Agency/Matchup/internal/config"
	"github.com/MikeSquared-Agency/Matchup/internal/hermes"
	"github.com/MikeSquared-Agency/Matchup/internal/metrics"
	"github.com/MikeSquared-Agency/Matchup/internal/scoring"
	"github.com/MikeSquared-Agency/Matchup/internal/store"
)

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Dataset source: database first, then file. Neither means upload-only.
	var src store.Source
	switch {
	case cfg.Database.URL != "":
		pg, err := store.NewPostgresSource(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		src = pg
		logger.Info("connected to database")
	case cfg.Dataset.Path != "":
		src = store.NewFileSource(cfg.Dataset.Path)
		logger.Info("using dataset file", "path", cfg.Dataset.Path)
	default:
		logger.Warn("no dataset source configured, waiting for upload")
	}

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	scoringCfg := scoring.ConfigFrom(cfg.Scoring)
	if err := scoringCfg.Weights.Validate(); err != nil {
		logger.Error("invalid scoring weights", "error", err)
		os.Exit(1)
	}
	engine := scoring.NewEngine(scoringCfg, logger)

	b := broker.New(engine, hermesClient, m, src, logger)
	if src != nil {
		if _, err := b.Reload(ctx); err != nil {
			logger.Warn("initial dataset load failed", "source", src.Name(), "error", err)
		}
	}
	if err := b.SetupSubscriptions(); err != nil {
		logger.Warn("failed to subscribe to reload requests", "error", err)
	}

	// API server
	router := api.NewRouter(b, cfg.Server.AdminToken, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

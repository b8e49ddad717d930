package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vytor/hippomemory/internal/api"
	"github.com/vytor/hippomemory/internal/config"
	"github.com/vytor/hippomemory/internal/logger"
	"github.com/vytor/hippomemory/internal/metrics"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(!cfg.Production()),
		logger.WithJSON(cfg.Production()),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Hippomemory Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr())
	log.Debug("env=%s", cfg.Env)
	log.Debug("web_root=%s", cfg.WebRoot)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("rate_limit_per_minute=%d", cfg.RateLimitPerMinute)

	srv := &api.Server{
		WebRoot:            cfg.WebRoot,
		Production:         cfg.Production(),
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Metrics:            metrics.New(),
	}

	// Wait for shutdown signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.NewContext(ctx, log)

	if err := srv.ListenAndServe(ctx, cfg.Addr()); err != nil {
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Hippomemory Server Stopped")
	log.Info("===========================================")
}

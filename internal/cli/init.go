// Package cli provides the bootstrap steps shared by cmd/donations and
// cmd/alerts-worker.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"donations/internal/backend"
	"donations/internal/config"
	"donations/internal/dataset"
	"donations/internal/log"
)

// SetupLogger builds the process logger at the given level and makes it the
// slog default.
func SetupLogger(level string) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(level),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it, logging any failure.
func LoadAndValidateConfig(logger *log.Logger) (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		return nil, err
	}
	return cfg, nil
}

// LoadDataset builds the configured loader and reads the dataset once. The
// returned backend always has a non-nil Cleanup.
func LoadDataset(ctx context.Context, logger *log.Logger, cfg *config.Config, factory backend.Factory) (*dataset.Dataset, *backend.BackendResult, error) {
	noop := &backend.BackendResult{Cleanup: func() error { return nil }}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, noop, err
	}

	res, err := factory.CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, noop, fmt.Errorf("create %s backend: %w", bcfg.Type, err)
	}
	if res.Cleanup == nil {
		res.Cleanup = noop.Cleanup
	}

	ds, err := res.Loader.Load(ctx)
	if err != nil {
		_ = res.Cleanup()
		return nil, noop, fmt.Errorf("load dataset from %s: %w", bcfg.Type, err)
	}

	logger.Info("Dataset loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldBackend, bcfg.Type.String(),
		"categories", ds.CategoryCount(),
		"donations", ds.DonationCount())

	return ds, res, nil
}

// ShutdownContext returns a context cancelled on SIGINT or SIGTERM.
func ShutdownContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	return shutdownOn(logger, syscall.SIGINT, syscall.SIGTERM)
}

func shutdownOn(logger *log.Logger, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

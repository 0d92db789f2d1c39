package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"donations/internal/amqp"
	"donations/internal/analytics"
	"donations/internal/backend"
	"donations/internal/cli"
	apphttp "donations/internal/http"
	"donations/internal/log"
	"donations/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	os.Exit(run())
}

// run wires and runs the service, returning the process exit code once every
// deferred cleanup has run.
func run() int {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg, err := cli.LoadAndValidateConfig(logger)
	if err != nil {
		return 1
	}

	ctx, stop := cli.ShutdownContext(logger)
	defer stop()

	ds, res, err := cli.LoadDataset(ctx, logger, cfg, backend.NewFactory(logger.Logger))
	if err != nil {
		logger.Error("Failed to load dataset", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		return 1
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Warn("Backend cleanup failed", log.FieldError, err)
		}
	}()

	engine := analytics.New(ds)
	opts := apphttp.OptionsFromConfig(cfg)
	opts.HealthCheck = res.HealthCheck
	srv := apphttp.NewServer(":"+cfg.Port, engine, opts, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting donation analytics server",
			"port", cfg.Port,
			"env", cfg.AppEnv,
			log.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
			return err
		}
		return nil
	})

	if cfg.AlertsEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, running-low alerts disabled", log.FieldError, err)
		} else {
			defer client.Close()
			w := worker.NewAlertWorker(engine, client, cfg.AlertInterval, logger)
			g.Go(func() error { return w.Run(gctx) })
		}
	} else {
		logger.Info("AMQP disabled - running-low alerts will not be published")
	}

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		return 1
	}
	logger.Info("Server stopped gracefully")
	return 0
}

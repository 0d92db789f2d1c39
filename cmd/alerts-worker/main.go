package main

import (
	"os"

	"donations/internal/amqp"
	"donations/internal/analytics"
	"donations/internal/backend"
	"donations/internal/cli"
	"donations/internal/log"
	"donations/internal/worker"
)

func main() {
	os.Exit(run())
}

func run() int {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	logger.Info("Starting alerts-worker")

	cfg, err := cli.LoadAndValidateConfig(logger)
	if err != nil {
		return 1
	}
	if !cfg.AlertsEnabled() {
		logger.Error("AMQP_URL is required for the alerts worker")
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

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		return 1
	}
	defer client.Close()

	w := worker.NewAlertWorker(analytics.New(ds), client, cfg.AlertInterval, logger)
	if err := w.Run(ctx); err != nil {
		logger.Error("Alert worker failed", log.FieldError, err)
		return 1
	}
	logger.Info("Alerts worker stopped")
	return 0
}

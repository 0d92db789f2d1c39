// Package worker runs background jobs next to the HTTP server.
package worker

import (
	"context"
	"fmt"
	"time"

	"donations/internal/amqp"
	"donations/internal/analytics"
	"donations/internal/log"
)

// AlertPublisher delivers running-low alerts.
type AlertPublisher interface {
	PublishRunningLowAlert(ctx context.Context, alert *amqp.RunningLowAlert) error
}

// AlertWorker periodically publishes one alert per running-low donation.
type AlertWorker struct {
	engine    *analytics.Engine
	publisher AlertPublisher
	interval  time.Duration
	logger    *log.Logger
	now       func() time.Time
}

func NewAlertWorker(engine *analytics.Engine, publisher AlertPublisher, interval time.Duration, logger *log.Logger) *AlertWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &AlertWorker{
		engine:    engine,
		publisher: publisher,
		interval:  interval,
		logger:    logger.WithComponent(log.ComponentWorker),
		now:       time.Now,
	}
}

// Run publishes once immediately and then on every tick until ctx is done.
// Publish failures are logged, never returned.
func (w *AlertWorker) Run(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Alert worker started", "interval", w.interval)

	w.publishAndLog(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "Alert worker stopped", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			w.publishAndLog(ctx)
		}
	}
}

func (w *AlertWorker) publishAndLog(ctx context.Context) {
	sent, err := w.RunOnce(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "Alert run finished with errors",
			log.FieldOperation, log.OpPublish,
			log.FieldCount, sent,
			log.FieldError, err)
		return
	}
	w.logger.DebugContext(ctx, "Alert run finished", log.FieldCount, sent)
}

// RunOnce publishes alerts for the current running-low donations and returns
// how many were delivered. Every donation is attempted; the first error is
// returned alongside the failure count.
func (w *AlertWorker) RunOnce(ctx context.Context) (int, error) {
	donations := w.engine.RunningLowDonations()
	at := w.now()

	sl := log.NewStructuredLogger(w.logger)
	sent, failed := 0, 0
	var firstErr error
	for _, d := range donations {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		if err := w.publisher.PublishRunningLowAlert(ctx, amqp.NewRunningLowAlert(d, at)); err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			sl.LogError(ctx, "Failed to publish running-low alert", err,
				log.ComponentWorker, log.OpPublish,
				log.NewFields().WithDonation(d.ID, d.Category.Name, d.UsagePercentage()))
			continue
		}
		sl.LogAlertPublished(ctx, d.ID, d.Category.Name, d.UsagePercentage())
		sent++
	}

	if firstErr != nil {
		return sent, fmt.Errorf("%d of %d alerts failed: %w", failed, len(donations), firstErr)
	}
	return sent, nil
}

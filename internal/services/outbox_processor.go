package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/internhub/backend/domain"
	"github.com/internhub/backend/internal/infrastructure/outbox"
	"github.com/internhub/backend/usecase"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how frequently the outbox is drained.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// OutboxProcessor retries undelivered notifications on a schedule. Delivery
// order follows enqueue time; an item that keeps failing past the retry cap
// is dropped with a warning rather than blocking the queue.
type OutboxProcessor struct {
	store     *outbox.Store
	monitor   ConnectionHealth
	publisher usecase.Notifier
	logger    *zap.Logger
	cron      *cron.Cron
	cfg       ProcessorConfig
}

func NewOutboxProcessor(
	store *outbox.Store,
	monitor ConnectionHealth,
	publisher usecase.Notifier,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *OutboxProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	op := &OutboxProcessor{
		store:     store,
		monitor:   monitor,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		cron:      cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = op.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := op.Drain(ctx); err != nil {
			op.logger.Error("outbox drain failed", zap.Error(err))
		}
	})

	return op
}

// Start launches the cron scheduler.
func (op *OutboxProcessor) Start() {
	if op == nil || op.cron == nil {
		return
	}
	op.cron.Start()
	op.logger.Info("outbox processor started")
}

// Stop gracefully stops the scheduler.
func (op *OutboxProcessor) Stop(ctx context.Context) {
	if op == nil || op.cron == nil {
		return
	}
	stopCtx := op.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	op.logger.Info("outbox processor stopped")
}

// Drain republishes pending notifications synchronously.
func (op *OutboxProcessor) Drain(ctx context.Context) error {
	if op == nil || op.store == nil {
		return nil
	}
	if op.monitor != nil && !op.monitor.IsOnline() {
		op.logger.Debug("skipping outbox drain (offline)")
		return nil
	}

	items, err := op.store.GetBatch(op.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := op.publisher.Notify(ctx, item.Notification); err != nil {
			op.logger.Error("failed to republish notification",
				zap.String("item_id", item.ID),
				zap.String("application_id", item.Notification.ApplicationID),
				zap.String("action", item.Notification.Action),
				zap.Error(err))

			item.Retries++
			if item.Retries >= op.cfg.MaxRetries {
				op.logger.Warn("dropping notification (max retries reached)", zap.String("item_id", item.ID))
				_ = op.store.Remove(item)
				continue
			}

			if err := op.store.Remove(item); err != nil {
				op.logger.Warn("failed to remove outbox item", zap.Error(err))
			}
			if err := op.store.Requeue(item); err != nil {
				op.logger.Error("failed to requeue outbox item", zap.Error(err))
			}
			continue
		}

		if err := op.store.Remove(item); err != nil {
			op.logger.Warn("failed to purge delivered notification", zap.Error(err))
		}
	}
	return nil
}

// Enqueue persists a notification that could not be dispatched directly.
func (op *OutboxProcessor) Enqueue(notification domain.Notification) error {
	if op == nil || op.store == nil {
		return fmt.Errorf("outbox processor not configured")
	}
	return op.store.Enqueue(outbox.Item{Notification: notification})
}

// Size returns the number of pending notifications.
func (op *OutboxProcessor) Size() int {
	if op == nil || op.store == nil {
		return 0
	}
	size, err := op.store.Size()
	if err != nil {
		return 0
	}
	return size
}

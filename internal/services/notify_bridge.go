package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/internhub/backend/domain"
	"github.com/internhub/backend/usecase"
)

// NotifyBridge fronts the notification publisher with the outbox. A failed
// dispatch is parked for retry and still reported to the caller, so the UI
// can warn that the status changed but the notification did not go out.
type NotifyBridge struct {
	publisher usecase.Notifier
	processor *OutboxProcessor
	logger    *zap.Logger
}

func NewNotifyBridge(publisher usecase.Notifier, processor *OutboxProcessor, logger *zap.Logger) *NotifyBridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotifyBridge{
		publisher: publisher,
		processor: processor,
		logger:    logger,
	}
}

func (b *NotifyBridge) Notify(ctx context.Context, notification domain.Notification) error {
	if b == nil || b.publisher == nil {
		return domain.NewError(domain.ErrCodeUnavailable, "notification transport not configured")
	}

	err := b.publisher.Notify(ctx, notification)
	if err == nil {
		return nil
	}

	if b.processor != nil {
		if enqueueErr := b.processor.Enqueue(notification); enqueueErr != nil {
			b.logger.Error("failed to park notification in outbox", zap.Error(enqueueErr))
		} else {
			b.logger.Warn("notification parked in outbox",
				zap.String("application_id", notification.ApplicationID),
				zap.String("action", notification.Action))
		}
	}
	return err
}

var _ usecase.Notifier = (*NotifyBridge)(nil)

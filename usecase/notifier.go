package usecase

import (
	"context"

	"github.com/internhub/backend/domain"
)

// Notifier abstracts the notification pipeline so use cases stay
// transport-agnostic. Dispatch failures are reported to the caller but never
// undo the lifecycle change that triggered them.
type Notifier interface {
	Notify(ctx context.Context, notification domain.Notification) error
}

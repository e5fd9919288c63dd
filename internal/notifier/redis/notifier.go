package redis

import (
	"context"
	"time"

	goRedis "github.com/redis/go-redis/v9"

	"github.com/internhub/backend/domain"
)

// Notifier publishes lifecycle notifications to a Redis stream consumed by
// the mailer service.
type Notifier struct {
	client *goRedis.Client
	stream string
}

func NewNotifier(client *goRedis.Client, stream string) *Notifier {
	if stream == "" {
		stream = "notifications"
	}
	return &Notifier{
		client: client,
		stream: stream,
	}
}

// Notify appends the notification to the stream. Failures are classified as
// UNAVAILABLE so callers can tell a transient transport fault from a rejected
// operation.
func (n *Notifier) Notify(ctx context.Context, notification domain.Notification) error {
	if n == nil || n.client == nil {
		return domain.NewError(domain.ErrCodeUnavailable, "notification transport not configured")
	}
	if notification.OccurredAt.IsZero() {
		notification.OccurredAt = time.Now().UTC()
	}

	err := n.client.XAdd(ctx, &goRedis.XAddArgs{
		Stream: n.stream,
		Values: map[string]interface{}{
			"application_id":  notification.ApplicationID,
			"action":          notification.Action,
			"candidate_email": notification.CandidateEmail,
			"candidate_name":  notification.CandidateName,
			"occurred_at":     notification.OccurredAt.Format(time.RFC3339),
		},
	}).Err()
	if err != nil {
		return domain.WrapError(domain.ErrCodeUnavailable, "failed to publish notification", err)
	}
	return nil
}

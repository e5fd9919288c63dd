package repository

import (
	"context"
	"time"

	"github.com/internhub/backend/domain"
)

// InterviewRepository persists interview schedules. Upsert keeps one row per
// application and updates ScheduledAt/Details on reschedule. ListUpcoming
// feeds the reminder sweep.
type InterviewRepository interface {
	GetByApplication(ctx context.Context, applicationID string) (*domain.Interview, error)
	Upsert(ctx context.Context, interview *domain.Interview) (*domain.Interview, error)
	ListUpcoming(ctx context.Context, from, until time.Time) ([]domain.Interview, error)
}

package repository

import (
	"context"

	"github.com/internhub/backend/domain"
)

type TaskFilter struct {
	ApplicationID string
	Status        string
	Limit         int
	Offset        int
}

// TaskStatusChange carries a conditional status update. From guards against
// concurrent review/submission of a stale copy. SubmissionLink and
// ReviewRemarks overwrite the stored values when non-nil, so a submit can
// clear stale remarks by passing an empty string.
type TaskStatusChange struct {
	From           domain.TaskStatus
	To             domain.TaskStatus
	SubmissionLink *string
	ReviewRemarks  *string
}

// TaskRepository persists tasks. UpdateStatus follows the same conditional
// discipline as ApplicationRepository.UpdateStatus: domain.ErrTaskNotFound
// when the row is gone, domain.ErrStaleStatus when its status no longer
// matches From.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByApplication(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	UpdateStatus(ctx context.Context, id string, change TaskStatusChange) (*domain.Task, error)
}

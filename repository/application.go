package repository

import (
	"context"
	"time"

	"github.com/internhub/backend/domain"
)

type ApplicationFilter struct {
	CandidateID  string
	InternshipID string
	Status       string
	Limit        int
	Offset       int
}

// ApplicationRepository persists applications. UpdateStatus is conditional on
// the expected current status so a concurrent change is rejected instead of
// overwritten: implementations return domain.ErrApplicationNotFound when the
// row is gone and domain.ErrStaleStatus when it exists with another status.
// InterviewDate, when non-nil, is written together with the status in the
// same statement.
type ApplicationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]domain.Application, error)
	Create(ctx context.Context, application *domain.Application) (*domain.Application, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus, interviewDate *time.Time) (*domain.Application, error)
}

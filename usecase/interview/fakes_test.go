package interview

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/internhub/backend/domain"
	"github.com/internhub/backend/repository"
)

// onUpdate, when set, runs before the status check inside UpdateStatus so
// tests can interleave a concurrent actor between the read and the write.
type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[string]domain.Application
	onUpdate     func(repo *fakeApplicationRepo)
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[string]domain.Application)}
}

func (r *fakeApplicationRepo) seed(app domain.Application) domain.Application {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applications[app.ID] = app
	return app
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.applications[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	clone := app
	return &clone, nil
}

func (r *fakeApplicationRepo) List(_ context.Context, _ repository.ApplicationFilter) ([]domain.Application, error) {
	return nil, nil
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *domain.Application) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applications[app.ID] = *app
	return app, nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id string, from, to domain.ApplicationStatus, interviewDate *time.Time) (*domain.Application, error) {
	if r.onUpdate != nil {
		r.onUpdate(r)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.applications[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	if app.Status != from {
		return nil, domain.ErrStaleStatus
	}
	app.Status = to
	if interviewDate != nil {
		d := *interviewDate
		app.InterviewDate = &d
	}
	app.UpdatedAt = time.Now().UTC()
	r.applications[id] = app
	clone := app
	return &clone, nil
}

type fakeInterviewRepo struct {
	mu         sync.Mutex
	interviews map[string]domain.Interview // keyed by application id
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{interviews: make(map[string]domain.Interview)}
}

func (r *fakeInterviewRepo) GetByApplication(_ context.Context, applicationID string) (*domain.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.interviews[applicationID]
	if !ok {
		return nil, domain.ErrInterviewNotFound
	}
	clone := iv
	return &clone, nil
}

func (r *fakeInterviewRepo) Upsert(_ context.Context, iv *domain.Interview) (*domain.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.interviews[iv.ApplicationID]
	if ok {
		existing.ScheduledAt = iv.ScheduledAt
		existing.Details = iv.Details
		existing.UpdatedAt = time.Now().UTC()
		r.interviews[iv.ApplicationID] = existing
		clone := existing
		return &clone, nil
	}
	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}
	iv.CreatedAt = time.Now().UTC()
	iv.UpdatedAt = iv.CreatedAt
	r.interviews[iv.ApplicationID] = *iv
	clone := *iv
	return &clone, nil
}

func (r *fakeInterviewRepo) ListUpcoming(_ context.Context, from, until time.Time) ([]domain.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Interview
	for _, iv := range r.interviews {
		if !iv.ScheduledAt.Before(from) && iv.ScheduledAt.Before(until) {
			out = append(out, iv)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

func (n *fakeNotifier) Notify(_ context.Context, notification domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, notification)
	return nil
}

func (n *fakeNotifier) dispatched() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Notification(nil), n.sent...)
}

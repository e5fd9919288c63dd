package applicationflow

import (
	"context"
	"sync"
	"time"

	"github.com/internhub/backend/domain"
	"github.com/internhub/backend/repository"
)

// fakeApplicationRepo is an in-memory ApplicationRepository honoring the
// conditional-update contract. onUpdate, when set, runs before the status
// check so tests can simulate a concurrent actor.
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
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}
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

func (r *fakeApplicationRepo) List(_ context.Context, filter repository.ApplicationFilter) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Application
	for _, app := range r.applications {
		if filter.CandidateID != "" && app.CandidateID != filter.CandidateID {
			continue
		}
		if filter.InternshipID != "" && app.InternshipID != filter.InternshipID {
			continue
		}
		if filter.Status != "" && string(app.Status) != filter.Status {
			continue
		}
		out = append(out, app)
	}
	return out, nil
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

// fakeNotifier records dispatched notifications and can be told to fail.
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

package taskflow

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/internhub/backend/domain"
	"github.com/internhub/backend/repository"
)

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]domain.Task)}
}

func (r *fakeTaskRepo) seed(task domain.Task) domain.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	r.tasks[task.ID] = task
	return task
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := task
	return &clone, nil
}

func (r *fakeTaskRepo) ListByApplication(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Task
	for _, task := range r.tasks {
		if filter.ApplicationID != "" && task.ApplicationID != filter.ApplicationID {
			continue
		}
		if filter.Status != "" && string(task.Status) != filter.Status {
			continue
		}
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = uuid.NewString()
	task.CreatedAt = time.Now().UTC()
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = *task
	clone := *task
	return &clone, nil
}

// UpdateStatus mirrors the conditional update of the live store: the status
// check and the mutation happen atomically, and nil change fields keep the
// stored value.
func (r *fakeTaskRepo) UpdateStatus(_ context.Context, id string, change repository.TaskStatusChange) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if task.Status != change.From {
		return nil, domain.ErrStaleStatus
	}
	task.Status = change.To
	if change.SubmissionLink != nil {
		task.SubmissionLink = *change.SubmissionLink
	}
	if change.ReviewRemarks != nil {
		task.ReviewRemarks = *change.ReviewRemarks
	}
	task.UpdatedAt = time.Now().UTC()
	r.tasks[id] = task
	clone := task
	return &clone, nil
}

type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[string]domain.Application
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
	r.applications[id] = app
	clone := app
	return &clone, nil
}

package taskflow

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/internhub/backend/domain"
	"github.com/internhub/backend/repository"
)

// Decision is a unit's verdict on submitted work.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionRedo   Decision = "redo"
)

// ParseDecision normalizes raw input into a known decision.
func ParseDecision(raw string) (Decision, bool) {
	decision := Decision(strings.ToLower(strings.TrimSpace(raw)))
	return decision, decision == DecisionAccept || decision == DecisionRedo
}

// UseCase owns the task review lifecycle and the read-side views derived
// from a fresh task query. Derived values are always recomputed from the
// authoritative collection rather than from locally mutated copies.
type UseCase struct {
	tasks        repository.TaskRepository
	applications repository.ApplicationRepository
	logger       *zap.Logger
}

func New(tasks repository.TaskRepository, applications repository.ApplicationRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:        tasks,
		applications: applications,
		logger:       logger,
	}
}

type CreateInput struct {
	ApplicationID string
	Title         string
	Description   string
	Color         string
	StartDate     *time.Time
	EndDate       *time.Time
}

// Create assigns a new pending task to a hired application. Schedule dates
// are optional but must be set together, and the end date may not precede
// the start date.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "task title is required")
	}
	if (input.StartDate == nil) != (input.EndDate == nil) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "start and end dates must be set together")
	}
	if input.StartDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "end date precedes start date")
	}

	app, err := uc.applications.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}
	if !app.IsHired() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "tasks can only be assigned to a hired application")
	}

	return uc.tasks.Create(ctx, &domain.Task{
		ApplicationID: app.ID,
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		Color:         input.Color,
		Status:        domain.TaskPending,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
	})
}

// Submit records the candidate's work on a pending or redo task. Remarks from
// an earlier review are cleared so the unit sees only the fresh submission.
func (uc *UseCase) Submit(ctx context.Context, taskID, submissionLink string) (*domain.Task, error) {
	link := strings.TrimSpace(submissionLink)
	if link == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "submission link is required")
	}

	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.Status.CanTransitionTo(domain.TaskSubmitted) {
		return nil, domain.NewInvalidTransition(string(task.Status), string(domain.TaskSubmitted))
	}

	cleared := ""
	return uc.tasks.UpdateStatus(ctx, task.ID, repository.TaskStatusChange{
		From:           task.Status,
		To:             domain.TaskSubmitted,
		SubmissionLink: &link,
		ReviewRemarks:  &cleared,
	})
}

// Review grades a submitted task: accept completes it, redo sends it back to
// the candidate. Remarks are stored either way.
func (uc *UseCase) Review(ctx context.Context, taskID string, decision Decision, remarks string) (*domain.Task, error) {
	target := domain.TaskAccepted
	switch decision {
	case DecisionAccept:
	case DecisionRedo:
		target = domain.TaskRedo
	default:
		return nil, domain.NewError(domain.ErrCodeInvalid, "decision must be accept or redo")
	}

	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.Status.CanTransitionTo(target) {
		return nil, domain.NewInvalidTransition(string(task.Status), string(target))
	}

	return uc.tasks.UpdateStatus(ctx, task.ID, repository.TaskStatusChange{
		From:          task.Status,
		To:            target,
		ReviewRemarks: &remarks,
	})
}

func (uc *UseCase) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	if filter.Status != "" {
		if _, ok := domain.ParseTaskStatus(filter.Status); !ok {
			return nil, domain.NewError(domain.ErrCodeInvalid, "unknown task status")
		}
	}
	return uc.tasks.ListByApplication(ctx, filter)
}

// Progress recomputes the completion summary from a fresh task query.
func (uc *UseCase) Progress(ctx context.Context, applicationID string) (domain.TaskProgress, error) {
	tasks, err := uc.tasks.ListByApplication(ctx, repository.TaskFilter{ApplicationID: applicationID})
	if err != nil {
		return domain.TaskProgress{}, err
	}
	return domain.CalculateOverallTaskProgress(tasks), nil
}

// Calendar rebuilds the calendar grid from a fresh task query.
func (uc *UseCase) Calendar(ctx context.Context, applicationID string, reference time.Time, view domain.CalendarView) ([]domain.CalendarDay, error) {
	tasks, err := uc.tasks.ListByApplication(ctx, repository.TaskFilter{ApplicationID: applicationID})
	if err != nil {
		return nil, err
	}
	return domain.BuildGrid(reference, view, tasks), nil
}

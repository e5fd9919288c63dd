package applicationflow

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/internhub/backend/domain"
	"github.com/internhub/backend/repository"
	"github.com/internhub/backend/usecase"
)

// UseCase owns the application status state machine. Transitions are checked
// against the closed edge table on domain.ApplicationStatus and persisted
// conditionally, so a concurrent change by another actor is rejected as a
// conflict instead of silently overwritten.
type UseCase struct {
	applications repository.ApplicationRepository
	notifier     usecase.Notifier
	logger       *zap.Logger
}

func New(applications repository.ApplicationRepository, notifier usecase.Notifier, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		applications: applications,
		notifier:     notifier,
		logger:       logger,
	}
}

// TransitionResult reports a confirmed transition. NotificationFailed is set
// when the status change persisted but the notification dispatch did not, so
// the caller can warn without treating the transition as failed.
type TransitionResult struct {
	Application        *domain.Application
	NotificationFailed bool
}

// Transition moves an application to the target status. Requesting the status
// the application already holds is a no-op success and sends no duplicate
// notification. Transitions into interviewed are refused here: scheduling
// carries a date and details, so it goes through the interview use case.
func (uc *UseCase) Transition(ctx context.Context, applicationID string, target domain.ApplicationStatus) (*TransitionResult, error) {
	if !target.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown application status")
	}

	app, err := uc.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if app.Status == target {
		return &TransitionResult{Application: app}, nil
	}
	if target == domain.ApplicationInterviewed {
		return nil, domain.NewError(domain.ErrCodeInvalidTransition, "interviews must be scheduled with a date and details")
	}
	if !app.Status.CanTransitionTo(target) {
		return nil, domain.NewInvalidTransition(string(app.Status), string(target))
	}

	updated, err := uc.applications.UpdateStatus(ctx, app.ID, app.Status, target, nil)
	if err != nil {
		return nil, err
	}

	result := &TransitionResult{Application: updated}
	if err := uc.notifier.Notify(ctx, domain.Notification{
		ApplicationID:  updated.ID,
		Action:         string(target),
		CandidateEmail: updated.CandidateEmail,
		CandidateName:  updated.CandidateName,
		OccurredAt:     time.Now().UTC(),
	}); err != nil {
		uc.logger.Warn("transition notification failed",
			zap.String("application_id", updated.ID),
			zap.String("action", string(target)),
			zap.Error(err))
		result.NotificationFailed = true
	}
	return result, nil
}

func (uc *UseCase) Get(ctx context.Context, applicationID string) (*domain.Application, error) {
	return uc.applications.GetByID(ctx, applicationID)
}

func (uc *UseCase) List(ctx context.Context, filter repository.ApplicationFilter) ([]domain.Application, error) {
	if filter.Status != "" {
		if _, ok := domain.ParseApplicationStatus(filter.Status); !ok {
			return nil, domain.NewError(domain.ErrCodeInvalid, "unknown application status")
		}
	}
	return uc.applications.List(ctx, filter)
}

package interview

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/internhub/backend/domain"
	"github.com/internhub/backend/repository"
	"github.com/internhub/backend/usecase"
)

// UseCase schedules interviews. It exists apart from the generic transition
// because scheduling carries extra payload (date and meeting details) that a
// bare status change does not.
type UseCase struct {
	applications repository.ApplicationRepository
	interviews   repository.InterviewRepository
	notifier     usecase.Notifier
	logger       *zap.Logger
}

func New(applications repository.ApplicationRepository, interviews repository.InterviewRepository, notifier usecase.Notifier, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		applications: applications,
		interviews:   interviews,
		notifier:     notifier,
		logger:       logger,
	}
}

// ScheduleResult reports a confirmed interview. InterviewDate is the
// persisted date; NotificationFailed follows the same contract as a
// transition result.
type ScheduleResult struct {
	Application        *domain.Application
	Interview          *domain.Interview
	InterviewDate      time.Time
	NotificationFailed bool
}

// Schedule books (or rebooks) an interview and moves the application to
// interviewed. Only applications that are applied, shortlisted or already
// interviewed can be scheduled; rescheduling simply updates the date.
func (uc *UseCase) Schedule(ctx context.Context, applicationID string, scheduledAt time.Time, details string) (*ScheduleResult, error) {
	if scheduledAt.IsZero() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "interview date is required")
	}

	app, err := uc.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	switch app.Status {
	case domain.ApplicationApplied, domain.ApplicationShortlisted, domain.ApplicationInterviewed:
	default:
		return nil, domain.NewInvalidTransition(string(app.Status), string(domain.ApplicationInterviewed))
	}

	// The conditional status update goes first: it is the step that detects a
	// concurrent transition, and a booking that loses that race must leave the
	// interview history untouched. The application row carries the
	// authoritative date, so a failed upsert afterwards loses only the details
	// text.
	updated, err := uc.applications.UpdateStatus(ctx, app.ID, app.Status, domain.ApplicationInterviewed, &scheduledAt)
	if err != nil {
		return nil, err
	}

	booked, err := uc.interviews.Upsert(ctx, &domain.Interview{
		ApplicationID: app.ID,
		ScheduledAt:   scheduledAt,
		Details:       details,
	})
	if err != nil {
		return nil, err
	}

	result := &ScheduleResult{
		Application:   updated,
		Interview:     booked,
		InterviewDate: scheduledAt,
	}
	if err := uc.notifier.Notify(ctx, domain.Notification{
		ApplicationID:  updated.ID,
		Action:         domain.ActionInterviewScheduled,
		CandidateEmail: updated.CandidateEmail,
		CandidateName:  updated.CandidateName,
		OccurredAt:     time.Now().UTC(),
	}); err != nil {
		uc.logger.Warn("interview notification failed",
			zap.String("application_id", updated.ID),
			zap.Error(err))
		result.NotificationFailed = true
	}
	return result, nil
}

// Upcoming lists interviews scheduled inside the given window. The reminder
// sweep uses it to dispatch interview_reminder notifications.
func (uc *UseCase) Upcoming(ctx context.Context, from, until time.Time) ([]domain.Interview, error) {
	if !until.After(from) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "window end must follow window start")
	}
	return uc.interviews.ListUpcoming(ctx, from, until)
}

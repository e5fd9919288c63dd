package applicationflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/backend/domain"
	"github.com/internhub/backend/repository"
)

func newTestUseCase() (*fakeApplicationRepo, *fakeNotifier, *UseCase) {
	repo := newFakeApplicationRepo()
	notifier := &fakeNotifier{}
	return repo, notifier, New(repo, notifier, nil)
}

func seedApplication(repo *fakeApplicationRepo, id string, status domain.ApplicationStatus) domain.Application {
	return repo.seed(domain.Application{
		ID:             id,
		CandidateID:    "cand-1",
		InternshipID:   "int-1",
		Status:         status,
		CandidateEmail: "jordan@example.com",
		CandidateName:  "Jordan Lee",
	})
}

func TestTransitionAppliedToShortlisted(t *testing.T) {
	t.Parallel()

	repo, notifier, uc := newTestUseCase()
	seedApplication(repo, "app-1", domain.ApplicationApplied)

	result, err := uc.Transition(context.Background(), "app-1", domain.ApplicationShortlisted)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationShortlisted, result.Application.Status)
	assert.False(t, result.NotificationFailed)

	sent := notifier.dispatched()
	require.Len(t, sent, 1)
	assert.Equal(t, "app-1", sent[0].ApplicationID)
	assert.Equal(t, string(domain.ApplicationShortlisted), sent[0].Action)
	assert.Equal(t, "jordan@example.com", sent[0].CandidateEmail)
	assert.Equal(t, "Jordan Lee", sent[0].CandidateName)
}

func TestTransitionInterviewedToHired(t *testing.T) {
	t.Parallel()

	repo, notifier, uc := newTestUseCase()
	seedApplication(repo, "app-1", domain.ApplicationInterviewed)

	result, err := uc.Transition(context.Background(), "app-1", domain.ApplicationHired)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationHired, result.Application.Status)
	require.Len(t, notifier.dispatched(), 1)
}

func TestTransitionAppliedToHiredRejected(t *testing.T) {
	t.Parallel()

	repo, notifier, uc := newTestUseCase()
	seedApplication(repo, "app-1", domain.ApplicationApplied)

	_, err := uc.Transition(context.Background(), "app-1", domain.ApplicationHired)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidTransition))
	assert.Empty(t, notifier.dispatched())

	app, err := repo.GetByID(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationApplied, app.Status)
}

func TestTransitionSameStatusIsNoOp(t *testing.T) {
	t.Parallel()

	repo, notifier, uc := newTestUseCase()
	seedApplication(repo, "app-1", domain.ApplicationShortlisted)

	result, err := uc.Transition(context.Background(), "app-1", domain.ApplicationShortlisted)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationShortlisted, result.Application.Status)
	assert.Empty(t, notifier.dispatched(), "no duplicate notification on no-op")
}

func TestTransitionToInterviewedGoesThroughScheduler(t *testing.T) {
	t.Parallel()

	repo, _, uc := newTestUseCase()
	seedApplication(repo, "app-1", domain.ApplicationShortlisted)

	_, err := uc.Transition(context.Background(), "app-1", domain.ApplicationInterviewed)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidTransition))
}

func TestTransitionNotFound(t *testing.T) {
	t.Parallel()

	_, _, uc := newTestUseCase()

	_, err := uc.Transition(context.Background(), "missing", domain.ApplicationShortlisted)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestTransitionConcurrentChangeConflicts(t *testing.T) {
	t.Parallel()

	repo, notifier, uc := newTestUseCase()
	seedApplication(repo, "app-1", domain.ApplicationApplied)

	// another actor rejects the application between our read and write
	repo.onUpdate = func(r *fakeApplicationRepo) {
		r.onUpdate = nil
		r.mu.Lock()
		app := r.applications["app-1"]
		app.Status = domain.ApplicationRejected
		r.applications["app-1"] = app
		r.mu.Unlock()
	}

	_, err := uc.Transition(context.Background(), "app-1", domain.ApplicationShortlisted)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
	assert.Empty(t, notifier.dispatched())
}

func TestTransitionNotificationFailureDoesNotRollBack(t *testing.T) {
	t.Parallel()

	repo, notifier, uc := newTestUseCase()
	seedApplication(repo, "app-1", domain.ApplicationApplied)
	notifier.err = domain.NewError(domain.ErrCodeUnavailable, "stream down")

	result, err := uc.Transition(context.Background(), "app-1", domain.ApplicationShortlisted)
	require.NoError(t, err)
	assert.True(t, result.NotificationFailed)
	assert.Equal(t, domain.ApplicationShortlisted, result.Application.Status)

	app, err := repo.GetByID(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationShortlisted, app.Status)
}

func TestTransitionUnknownStatus(t *testing.T) {
	t.Parallel()

	repo, _, uc := newTestUseCase()
	seedApplication(repo, "app-1", domain.ApplicationApplied)

	_, err := uc.Transition(context.Background(), "app-1", domain.ApplicationStatus("archived"))
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

// Exhaustive transition grid through the use case: every from/to pair either
// succeeds per the lifecycle table or is rejected, with interviewed targets
// always deferred to the interview scheduler.
func TestTransitionGrid(t *testing.T) {
	t.Parallel()

	statuses := []domain.ApplicationStatus{
		domain.ApplicationApplied,
		domain.ApplicationShortlisted,
		domain.ApplicationRejected,
		domain.ApplicationInterviewed,
		domain.ApplicationHired,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			repo, notifier, uc := newTestUseCase()
			seedApplication(repo, "app-1", from)

			result, err := uc.Transition(context.Background(), "app-1", to)

			switch {
			case from == to:
				require.NoErrorf(t, err, "%s -> %s", from, to)
				assert.Emptyf(t, notifier.dispatched(), "%s -> %s", from, to)
			case from.CanTransitionTo(to) && to != domain.ApplicationInterviewed:
				require.NoErrorf(t, err, "%s -> %s", from, to)
				assert.Equalf(t, to, result.Application.Status, "%s -> %s", from, to)
				assert.Lenf(t, notifier.dispatched(), 1, "%s -> %s", from, to)
			default:
				require.Errorf(t, err, "%s -> %s", from, to)
				assert.Truef(t, domain.IsDomainError(err, domain.ErrCodeInvalidTransition), "%s -> %s", from, to)
			}
		}
	}
}

func TestListValidatesStatusFilter(t *testing.T) {
	t.Parallel()

	repo, _, uc := newTestUseCase()
	seedApplication(repo, "app-1", domain.ApplicationApplied)

	_, err := uc.List(context.Background(), repository.ApplicationFilter{Status: "archived"})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	apps, err := uc.List(context.Background(), repository.ApplicationFilter{Status: "applied"})
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

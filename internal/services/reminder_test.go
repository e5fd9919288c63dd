package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/backend/domain"
	"github.com/internhub/backend/repository"
)

type fakeUpcomingLister struct {
	interviews []domain.Interview
	from       time.Time
	until      time.Time
}

func (f *fakeUpcomingLister) Upcoming(_ context.Context, from, until time.Time) ([]domain.Interview, error) {
	f.from = from
	f.until = until
	return f.interviews, nil
}

type fakeApplicationReader struct {
	applications map[string]domain.Application
}

func (f *fakeApplicationReader) GetByID(_ context.Context, id string) (*domain.Application, error) {
	app, ok := f.applications[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return &app, nil
}

func (f *fakeApplicationReader) List(_ context.Context, _ repository.ApplicationFilter) ([]domain.Application, error) {
	return nil, nil
}

func (f *fakeApplicationReader) Create(_ context.Context, app *domain.Application) (*domain.Application, error) {
	return app, nil
}

func (f *fakeApplicationReader) UpdateStatus(_ context.Context, id string, _, _ domain.ApplicationStatus, _ *time.Time) (*domain.Application, error) {
	return f.GetByID(context.Background(), id)
}

type recordingNotifier struct {
	sent []domain.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification domain.Notification) error {
	n.sent = append(n.sent, notification)
	return nil
}

func TestSweepDispatchesRemindersInsideWindow(t *testing.T) {
	soon := time.Now().UTC().Add(3 * time.Hour)
	lister := &fakeUpcomingLister{interviews: []domain.Interview{
		{ID: "iv-1", ApplicationID: "app-1", ScheduledAt: soon},
		{ID: "iv-2", ApplicationID: "gone", ScheduledAt: soon},
	}}
	apps := &fakeApplicationReader{applications: map[string]domain.Application{
		"app-1": {ID: "app-1", Status: domain.ApplicationInterviewed,
			CandidateEmail: "dana@example.com", CandidateName: "Dana"},
	}}
	notifier := &recordingNotifier{}

	sweep := NewReminderSweep(lister, apps, notifier, nil, ReminderConfig{Window: 24 * time.Hour})
	require.NoError(t, sweep.Sweep(context.Background()))

	// The window handed to the lister spans the configured duration.
	assert.Equal(t, 24*time.Hour, lister.until.Sub(lister.from))

	// One reminder for the known application; the missing one is skipped.
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, domain.ActionInterviewReminder, notifier.sent[0].Action)
	assert.Equal(t, "app-1", notifier.sent[0].ApplicationID)
	assert.Equal(t, "dana@example.com", notifier.sent[0].CandidateEmail)
	assert.Equal(t, "Dana", notifier.sent[0].CandidateName)
}

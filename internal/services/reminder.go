package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/internhub/backend/domain"
	"github.com/internhub/backend/repository"
	"github.com/internhub/backend/usecase"
)

// ReminderConfig controls the interview reminder sweep.
type ReminderConfig struct {
	Schedule string
	Window   time.Duration
}

// UpcomingLister yields the interviews scheduled inside a window. The
// interview use case satisfies it.
type UpcomingLister interface {
	Upcoming(ctx context.Context, from, until time.Time) ([]domain.Interview, error)
}

// ReminderSweep dispatches interview_reminder notifications for interviews
// inside the configured window. The sweep only reads state; it never mutates
// applications or interviews.
type ReminderSweep struct {
	interviews   UpcomingLister
	applications repository.ApplicationRepository
	notifier     usecase.Notifier
	logger       *zap.Logger
	cron         *cron.Cron
	cfg          ReminderConfig
}

func NewReminderSweep(
	interviews UpcomingLister,
	applications repository.ApplicationRepository,
	notifier usecase.Notifier,
	logger *zap.Logger,
	cfg ReminderConfig,
) *ReminderSweep {
	if cfg.Schedule == "" {
		cfg.Schedule = "0 0 8 * * *"
	}
	if cfg.Window <= 0 {
		cfg.Window = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rs := &ReminderSweep{
		interviews:   interviews,
		applications: applications,
		notifier:     notifier,
		logger:       logger,
		cfg:          cfg,
		cron:         cron.New(cron.WithSeconds()),
	}

	_, _ = rs.cron.AddFunc(cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := rs.Sweep(ctx); err != nil {
			rs.logger.Error("reminder sweep failed", zap.Error(err))
		}
	})

	return rs
}

// Start launches the cron scheduler.
func (rs *ReminderSweep) Start() {
	if rs == nil || rs.cron == nil {
		return
	}
	rs.cron.Start()
	rs.logger.Info("reminder sweep started", zap.String("schedule", rs.cfg.Schedule))
}

// Stop gracefully stops the scheduler.
func (rs *ReminderSweep) Stop(ctx context.Context) {
	if rs == nil || rs.cron == nil {
		return
	}
	stopCtx := rs.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	rs.logger.Info("reminder sweep stopped")
}

// Sweep dispatches one reminder per interview inside the window.
func (rs *ReminderSweep) Sweep(ctx context.Context) error {
	now := time.Now().UTC()
	upcoming, err := rs.interviews.Upcoming(ctx, now, now.Add(rs.cfg.Window))
	if err != nil {
		return err
	}

	for _, iv := range upcoming {
		app, err := rs.applications.GetByID(ctx, iv.ApplicationID)
		if err != nil {
			rs.logger.Warn("skipping reminder for missing application",
				zap.String("application_id", iv.ApplicationID),
				zap.Error(err))
			continue
		}
		if err := rs.notifier.Notify(ctx, domain.Notification{
			ApplicationID:  app.ID,
			Action:         domain.ActionInterviewReminder,
			CandidateEmail: app.CandidateEmail,
			CandidateName:  app.CandidateName,
			OccurredAt:     now,
		}); err != nil {
			rs.logger.Warn("reminder dispatch failed",
				zap.String("application_id", app.ID),
				zap.Error(err))
		}
	}
	return nil
}

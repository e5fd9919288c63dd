package domain

import "time"

// Interview records a scheduled interview for an application. Rescheduling
// keeps the row and updates ScheduledAt; the confirmed date is mirrored onto
// the application as InterviewDate.
type Interview struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Details       string    `json:"details,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

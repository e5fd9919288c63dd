package domain

import "time"

// Lifecycle actions carried by notifications beyond plain status changes.
const (
	ActionInterviewScheduled = "interview_scheduled"
	ActionInterviewReminder  = "interview_reminder"
)

// Notification is the payload dispatched to the mailer pipeline after a
// confirmed lifecycle change. Dispatch is fire-and-forget: a failed dispatch
// never rolls back the change it reports.
type Notification struct {
	ApplicationID  string    `json:"application_id"`
	Action         string    `json:"action"`
	CandidateEmail string    `json:"candidate_email"`
	CandidateName  string    `json:"candidate_name"`
	OccurredAt     time.Time `json:"occurred_at"`
}

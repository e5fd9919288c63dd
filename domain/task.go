package domain

import (
	"strings"
	"time"
)

// TaskStatus is the closed set of review states for a task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskSubmitted TaskStatus = "submitted"
	TaskRedo      TaskStatus = "redo"
	TaskAccepted  TaskStatus = "accepted"
)

// ParseTaskStatus normalizes raw input into a known status.
func ParseTaskStatus(raw string) (TaskStatus, bool) {
	status := TaskStatus(strings.ToLower(strings.TrimSpace(raw)))
	return status, status.Valid()
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskSubmitted, TaskRedo, TaskAccepted:
		return true
	default:
		return false
	}
}

// CanTransitionTo enforces the task lifecycle edges:
//
//	pending   -> submitted
//	submitted -> accepted, redo
//	redo      -> submitted
//	accepted  -> (terminal)
func (s TaskStatus) CanTransitionTo(target TaskStatus) bool {
	switch s {
	case TaskPending, TaskRedo:
		return target == TaskSubmitted
	case TaskSubmitted:
		return target == TaskAccepted || target == TaskRedo
	default:
		return false
	}
}

// Task is a unit of assigned work attached to a hired application. Color is a
// display tag with no lifecycle meaning. SubmissionLink is set when the
// candidate submits; ReviewRemarks when the unit reviews.
type Task struct {
	ID             string     `json:"id"`
	ApplicationID  string     `json:"application_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Color          string     `json:"color,omitempty"`
	Status         TaskStatus `json:"status"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	SubmissionLink string     `json:"submission_link,omitempty"`
	ReviewRemarks  string     `json:"review_remarks,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Dated reports whether the task carries both schedule dates and can be
// placed on a calendar.
func (t *Task) Dated() bool {
	return t != nil && t.StartDate != nil && t.EndDate != nil
}

func (t *Task) IsAccepted() bool {
	return t != nil && t.Status == TaskAccepted
}

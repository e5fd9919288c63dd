package domain

import (
	"strings"
	"time"
)

// ApplicationStatus is the closed set of lifecycle states for an application.
type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "applied"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationInterviewed ApplicationStatus = "interviewed"
	ApplicationHired       ApplicationStatus = "hired"
)

// ParseApplicationStatus normalizes raw input into a known status.
func ParseApplicationStatus(raw string) (ApplicationStatus, bool) {
	status := ApplicationStatus(strings.ToLower(strings.TrimSpace(raw)))
	return status, status.Valid()
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationApplied, ApplicationShortlisted, ApplicationRejected, ApplicationInterviewed, ApplicationHired:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transitions are allowed.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationHired || s == ApplicationRejected
}

// CanTransitionTo enforces the application lifecycle edges:
//
//	applied     -> shortlisted, rejected
//	shortlisted -> rejected, hired, interviewed
//	interviewed -> hired, rejected
//	hired       -> (terminal)
//	rejected    -> (terminal)
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	switch s {
	case ApplicationApplied:
		return target == ApplicationShortlisted || target == ApplicationRejected
	case ApplicationShortlisted:
		return target == ApplicationRejected || target == ApplicationHired || target == ApplicationInterviewed
	case ApplicationInterviewed:
		return target == ApplicationHired || target == ApplicationRejected
	default:
		return false
	}
}

// Application is a candidate's request to join a specific internship, tracked
// through a status lifecycle. ProfileMatchScore is computed externally and is
// read-only here. InterviewDate is set once the application passes through
// the interviewed status and is never cleared by later transitions.
type Application struct {
	ID                string            `json:"id"`
	CandidateID       string            `json:"candidate_id"`
	InternshipID      string            `json:"internship_id"`
	Status            ApplicationStatus `json:"status"`
	AppliedAt         time.Time         `json:"applied_at"`
	ProfileMatchScore int               `json:"profile_match_score"`
	InterviewDate     *time.Time        `json:"interview_date,omitempty"`
	CandidateEmail    string            `json:"candidate_email,omitempty"`
	CandidateName     string            `json:"candidate_name,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (a *Application) IsHired() bool {
	return a != nil && a.Status == ApplicationHired
}

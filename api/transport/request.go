package transport

// TransitionRequest moves an application to a target status.
type TransitionRequest struct {
	Target string `json:"target"`
}

// InterviewRequest schedules or reschedules an interview.
type InterviewRequest struct {
	ScheduledAt string `json:"scheduled_at"`
	Details     string `json:"details"`
}

// TaskCreateRequest assigns a new task to a hired application. Dates are
// RFC3339 and optional, but must be provided together.
type TaskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// TaskSubmitRequest records the candidate's work on a task.
type TaskSubmitRequest struct {
	SubmissionLink string `json:"submission_link"`
}

// TaskReviewRequest grades a submitted task.
type TaskReviewRequest struct {
	Decision string `json:"decision"`
	Remarks  string `json:"remarks"`
}

package domain

import (
	"math"
	"time"
)

// TaskProgress is the derived completion summary over a task set. Percentage
// counts only accepted tasks; submitted and redo earn no partial credit. The
// date range spans tasks that carry both schedule dates, undated tasks still
// count in the denominator.
type TaskProgress struct {
	Percentage int        `json:"percentage"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// CalculateOverallTaskProgress aggregates completion across tasks. An empty
// input yields zero percent and no range.
func CalculateOverallTaskProgress(tasks []Task) TaskProgress {
	if len(tasks) == 0 {
		return TaskProgress{}
	}

	accepted := 0
	var start, end *time.Time
	for i := range tasks {
		t := &tasks[i]
		if t.Status == TaskAccepted {
			accepted++
		}
		if !t.Dated() {
			continue
		}
		if start == nil || t.StartDate.Before(*start) {
			s := *t.StartDate
			start = &s
		}
		if end == nil || t.EndDate.After(*end) {
			e := *t.EndDate
			end = &e
		}
	}

	// Round half up, matching how the percentage is rendered.
	percentage := int(math.Floor(float64(accepted)*100/float64(len(tasks)) + 0.5))

	return TaskProgress{
		Percentage: percentage,
		StartDate:  start,
		EndDate:    end,
	}
}

package domain

import (
	"sort"
	"strings"
	"time"
)

// CalendarView selects the span of a calendar grid.
type CalendarView string

const (
	ViewMonth CalendarView = "month"
	ViewWeek  CalendarView = "week"
)

// ParseCalendarView normalizes raw input into a known view mode.
func ParseCalendarView(raw string) (CalendarView, bool) {
	view := CalendarView(strings.ToLower(strings.TrimSpace(raw)))
	return view, view == ViewMonth || view == ViewWeek
}

// CalendarDay is one cell of a calendar grid. IsCurrentPeriod is false for
// leading/trailing filler days that pad a month out to complete weeks. Tasks
// holds every task whose schedule covers this date, ordered by start date
// then title. CalendarDay values are derived on demand and never persisted.
type CalendarDay struct {
	Date            time.Time `json:"date"`
	IsCurrentPeriod bool      `json:"is_current_period"`
	Tasks           []Task    `json:"tasks,omitempty"`
}

// BuildGrid lays out tasks on a calendar around the reference date.
//
// Month view spans complete weeks covering the reference month: it begins on
// the Sunday on or before the 1st and ends on the Saturday on or after the
// last day, so the cell count is always a multiple of 7. Week view is exactly
// the 7 days of the week containing the reference date.
//
// A task appears on every day inside [StartDate, EndDate]; tasks missing
// either date are never placed.
func BuildGrid(reference time.Time, view CalendarView, tasks []Task) []CalendarDay {
	ref := truncateToDay(reference)

	var gridStart, gridEnd time.Time
	switch view {
	case ViewWeek:
		gridStart = startOfWeek(ref)
		gridEnd = gridStart.AddDate(0, 0, 6)
	default:
		monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		monthEnd := monthStart.AddDate(0, 1, -1)
		gridStart = startOfWeek(monthStart)
		gridEnd = startOfWeek(monthEnd).AddDate(0, 0, 6)
	}

	dated := make([]Task, 0, len(tasks))
	for i := range tasks {
		if tasks[i].Dated() {
			dated = append(dated, tasks[i])
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		if !dated[i].StartDate.Equal(*dated[j].StartDate) {
			return dated[i].StartDate.Before(*dated[j].StartDate)
		}
		return dated[i].Title < dated[j].Title
	})

	var days []CalendarDay
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		cell := CalendarDay{Date: day}
		switch view {
		case ViewWeek:
			cell.IsCurrentPeriod = true
		default:
			cell.IsCurrentPeriod = day.Year() == ref.Year() && day.Month() == ref.Month()
		}
		for i := range dated {
			if covers(&dated[i], day) {
				cell.Tasks = append(cell.Tasks, dated[i])
			}
		}
		days = append(days, cell)
	}
	return days
}

// NextPeriod advances the reference date by one month or week. Navigation is
// pure date arithmetic and never touches task data.
func NextPeriod(reference time.Time, view CalendarView) time.Time {
	if view == ViewWeek {
		return reference.AddDate(0, 0, 7)
	}
	return shiftMonth(reference, 1)
}

// PreviousPeriod moves the reference date back by one month or week.
func PreviousPeriod(reference time.Time, view CalendarView) time.Time {
	if view == ViewWeek {
		return reference.AddDate(0, 0, -7)
	}
	return shiftMonth(reference, -1)
}

// shiftMonth moves to the first day of the month offset months away. Adding
// a month to the raw reference would normalize day overflow (Jan 31 + 1 month
// is Mar 2) and skip short months, so navigation anchors on the 1st.
func shiftMonth(reference time.Time, offset int) time.Time {
	first := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
	return first.AddDate(0, offset, 0)
}

func covers(t *Task, day time.Time) bool {
	start := truncateToDay(*t.StartDate)
	end := truncateToDay(*t.EndDate)
	return !day.Before(start) && !day.After(end)
}

// Weeks run Sunday through Saturday.
func startOfWeek(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

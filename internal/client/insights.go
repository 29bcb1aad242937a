package client

import (
	"math"
	"time"

	"flowboard/internal/model"
)

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayBucket counts overdue tasks due on one weekday. Percent is relative to
// the fullest bucket.
type DayBucket struct {
	Label   string
	Count   int
	Percent int
}

type Insights struct {
	Completed int
	Pending   int

	CompletedSharePercent int
	// PendingSharePercent is 100 - CompletedSharePercent, so it reads 100 with no tasks at all.
	PendingSharePercent int

	// Week is ordered Monday first.
	Week [7]DayBucket
}

func IsOverdue(t Task, now time.Time) bool {
	return t.Status != model.StatusDone && t.DueDate != nil && !t.DueDate.After(now)
}

// IsLongOverdue is true once a task has been overdue for a full day.
func IsLongOverdue(t Task, now time.Time) bool {
	return IsOverdue(t, now) && now.Sub(*t.DueDate) >= 24*time.Hour
}

// ComputeInsights derives the activity figures from tasks. Calendar days are
// taken in now's location.
func ComputeInsights(tasks []Task, now time.Time) Insights {
	var in Insights
	for _, t := range tasks {
		if t.Status == model.StatusDone {
			in.Completed++
		}
	}
	in.Pending = len(tasks) - in.Completed

	if total := in.Completed + in.Pending; total > 0 {
		in.CompletedSharePercent = percent(in.Completed, total)
	}
	in.PendingSharePercent = 100 - in.CompletedSharePercent

	var counts [7]int
	for _, t := range tasks {
		if !IsOverdue(t, now) {
			continue
		}
		due := t.DueDate.In(now.Location())
		dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
		if int(now.Sub(dueDay)/(24*time.Hour)) <= 6 {
			counts[mondayIndex(due.Weekday())]++
		}
	}

	peak := 1
	for _, n := range counts {
		peak = max(peak, n)
	}
	for i, n := range counts {
		in.Week[i] = DayBucket{Label: weekdayLabels[i], Count: n, Percent: percent(n, peak)}
	}
	return in
}

func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func percent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}

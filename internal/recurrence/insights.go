package recurrence

import (
	"fmt"
	"time"

	"choretracker/internal/models"
)

// Status summarises where a task stands relative to its next due date.
type Status string

const (
	StatusDueToday    Status = "due_today"
	StatusDueTomorrow Status = "due_tomorrow"
	StatusUpcoming    Status = "upcoming"
	StatusOverdue     Status = "overdue"
	StatusUnscheduled Status = "unscheduled"
)

// Insights are the derived numbers shown on a task's detail page.
type Insights struct {
	DaysSinceCreated       *int   `json:"daysSinceCreated,omitempty"`
	DaysSinceLastCompleted *int   `json:"daysSinceLastCompleted,omitempty"`
	DaysUntilNext          *int   `json:"daysUntilNext,omitempty"`
	OverdueDays            int    `json:"overdueDays"`
	Overdue                bool   `json:"overdue"`
	CompletedToday         bool   `json:"completedToday"`
	Status                 Status `json:"status"`
	Schedule               string `json:"schedule"`
}

// Describe derives the insights of t as of ref.
func Describe(t models.Task, ref time.Time) Insights {
	in := Insights{
		OverdueDays:    OverdueDays(t.NextDueDate, ref),
		Overdue:        IsOverdue(t, ref),
		CompletedToday: !IsNotCompletedToday(t, ref),
		Schedule:       Schedule(t),
		Status:         StatusUnscheduled,
	}

	if !t.CreatedAt.IsZero() {
		d := DaysBetween(t.CreatedAt, ref)
		in.DaysSinceCreated = &d
	}
	if t.LastCompletedAt != nil {
		d := DaysBetween(*t.LastCompletedAt, ref)
		in.DaysSinceLastCompleted = &d
	}
	if t.NextDueDate != nil {
		d := DaysBetween(ref, *t.NextDueDate)
		in.DaysUntilNext = &d
		switch {
		case d == 0:
			in.Status = StatusDueToday
		case d < 0:
			in.Status = StatusOverdue
		case d == 1:
			in.Status = StatusDueTomorrow
		default:
			in.Status = StatusUpcoming
		}
	}
	return in
}

// Schedule describes the recurrence rule in words.
func Schedule(t models.Task) string {
	switch t.Recurrence {
	case models.RecurrenceDaily:
		return "every day"
	case models.RecurrenceWeekly:
		if t.Weekday != nil {
			return fmt.Sprintf("every %s", t.Weekday.String())
		}
		return "every 7 days (no weekday set)"
	case models.RecurrenceBiweekly:
		return "every 14 days within the current half-month"
	case models.RecurrenceMonthly:
		return "monthly on the same day, or the last day of shorter months"
	}
	return string(t.Recurrence)
}

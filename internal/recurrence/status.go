package recurrence

import (
	"time"

	"choretracker/internal/models"
)

// IsNotCompletedToday reports whether the task has no completion on ref's
// calendar day.
func IsNotCompletedToday(t models.Task, ref time.Time) bool {
	if t.LastCompletedAt == nil {
		return true
	}
	return !SameDay(*t.LastCompletedAt, ref)
}

// IsDueToday reports whether the task's next due date is ref's calendar day.
func IsDueToday(t models.Task, ref time.Time) bool {
	if t.NextDueDate == nil {
		return false
	}
	return SameDay(*t.NextDueDate, ref)
}

// IsSameWeekdayAsToday reports whether a weekly task is anchored to ref's weekday.
func IsSameWeekdayAsToday(t models.Task, ref time.Time) bool {
	return IsSameWeekday(ref, t.Weekday)
}

// IsWeeklyOverdue reports whether a weekly task anchored to another weekday
// was due on an earlier day and has not been done today.
func IsWeeklyOverdue(t models.Task, ref time.Time) bool {
	if t.Recurrence != models.RecurrenceWeekly || t.NextDueDate == nil {
		return false
	}
	if !IsNotCompletedToday(t, ref) || IsSameWeekdayAsToday(t, ref) {
		return false
	}
	return StartOfDay(t.NextDueDate.In(ref.Location())).Before(StartOfDay(ref))
}

// IsBiweeklyOverdue reports whether a biweekly task was due before the
// current half-month started.
func IsBiweeklyOverdue(t models.Task, ref time.Time) bool {
	if t.Recurrence != models.RecurrenceBiweekly || t.NextDueDate == nil {
		return false
	}
	if !IsNotCompletedToday(t, ref) {
		return false
	}
	return dueBefore(t, StartOfCurrentHalfMonth(ref))
}

// IsMonthlyOverdue reports whether a monthly task was due before the current
// month started.
func IsMonthlyOverdue(t models.Task, ref time.Time) bool {
	if t.Recurrence != models.RecurrenceMonthly || t.NextDueDate == nil {
		return false
	}
	if !IsNotCompletedToday(t, ref) {
		return false
	}
	return dueBefore(t, StartOfCurrentMonth(ref))
}

// IsOverdue applies the overdue rule matching the task's recurrence. Daily
// tasks are never overdue.
func IsOverdue(t models.Task, ref time.Time) bool {
	switch t.Recurrence {
	case models.RecurrenceWeekly:
		return IsWeeklyOverdue(t, ref)
	case models.RecurrenceBiweekly:
		return IsBiweeklyOverdue(t, ref)
	case models.RecurrenceMonthly:
		return IsMonthlyOverdue(t, ref)
	}
	return false
}

// OverdueDays counts whole days between the due date and ref. It is zero for
// a missing due date or one that is not in the past.
func OverdueDays(nextDueDate *time.Time, ref time.Time) int {
	if nextDueDate == nil {
		return 0
	}
	days := DaysBetween(*nextDueDate, ref)
	if days < 0 {
		return 0
	}
	return days
}

func dueBefore(t models.Task, boundary time.Time) bool {
	// The boundary is built in ref's location; compare calendar days there.
	due := StartOfDay(t.NextDueDate.In(boundary.Location()))
	return due.Before(boundary)
}

package recurrence

import (
	"time"

	"choretracker/internal/models"
)

// NextDueDate computes the next occurrence of a task with the given
// recurrence, counted from base. It never fails: a weekly task without a
// weekday falls back to a plain seven day interval, and an unknown kind is
// treated as daily.
func NextDueDate(kind models.Recurrence, base time.Time, weekday *time.Weekday) time.Time {
	switch kind {
	case models.RecurrenceWeekly:
		if weekday == nil {
			return AddDays(base, 7)
		}
		return NextWeekday(base, *weekday)
	case models.RecurrenceBiweekly:
		return AddDays(base, 14)
	case models.RecurrenceMonthly:
		return nextMonth(base)
	default:
		return AddDays(base, 1)
	}
}

// NextWeekday returns the first date strictly after base that falls on
// weekday. When base is already on weekday the result is one week later.
func NextWeekday(base time.Time, weekday time.Weekday) time.Time {
	delta := (int(weekday) - int(base.Weekday())) % 7
	if delta <= 0 {
		delta += 7
	}
	return AddDays(base, delta)
}

// nextMonth keeps base's day of month one month later, clamping to the last
// day of that month when it is shorter (Jan 31 -> Feb 28).
func nextMonth(base time.Time) time.Time {
	y, m, d := base.Date()
	hh, mm, ss := base.Clock()
	target := m + 1
	if last := daysInMonth(y, target); d > last {
		d = last
	}
	return time.Date(y, target, d, hh, mm, ss, base.Nanosecond(), base.Location())
}

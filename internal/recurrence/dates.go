// Package recurrence holds the date arithmetic behind recurring tasks: next
// occurrence computation, due/overdue predicates, counts, sorting and views.
//
// Every function takes the reference date explicitly. Nothing in this package
// reads the clock.
package recurrence

import "time"

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays shifts t by n calendar days, keeping the wall clock time.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same calendar day, as seen
// from b's location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsSameWeekday reports whether t falls on weekday. A nil weekday never matches.
func IsSameWeekday(t time.Time, weekday *time.Weekday) bool {
	if weekday == nil {
		return false
	}
	return t.Weekday() == *weekday
}

func firstHalf(t time.Time) bool {
	return t.Day() <= 15
}

// IsWithinCurrentHalfMonth reports whether t falls in the same half of the
// same month as ref. Days 1-15 form the first half, 16 to month end the second.
func IsWithinCurrentHalfMonth(t, ref time.Time) bool {
	if !IsWithinCurrentMonth(t, ref) {
		return false
	}
	return firstHalf(t.In(ref.Location())) == firstHalf(ref)
}

// IsWithinCurrentMonth reports whether t falls in ref's month and year.
func IsWithinCurrentMonth(t, ref time.Time) bool {
	ty, tm, _ := t.In(ref.Location()).Date()
	ry, rm, _ := ref.Date()
	return ty == ry && tm == rm
}

// StartOfCurrentHalfMonth returns day 1 or day 16 of ref's month at midnight.
func StartOfCurrentHalfMonth(ref time.Time) time.Time {
	y, m, _ := ref.Date()
	day := 1
	if !firstHalf(ref) {
		day = 16
	}
	return time.Date(y, m, day, 0, 0, 0, 0, ref.Location())
}

// StartOfCurrentMonth returns day 1 of ref's month at midnight.
func StartOfCurrentMonth(ref time.Time) time.Time {
	y, m, _ := ref.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, ref.Location())
}

// DaysBetween counts calendar days from a to b, ignoring the time of day.
// The result is negative when b is before a. Days are read in b's location.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	// UTC midnights are exactly 24h apart, so DST changes cannot skew the count.
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

package recurrence

import (
	"time"

	"choretracker/internal/models"
)

// Counts holds the number of open tasks behind each view tab.
type Counts struct {
	Today    int `json:"today"`
	Week     int `json:"week"`
	Biweekly int `json:"biweekly"`
	Month    int `json:"month"`
}

// ComputeCounts counts active tasks not yet completed on ref's day, per view.
func ComputeCounts(tasks []models.Task, ref time.Time) Counts {
	var c Counts
	for _, t := range tasks {
		if !t.Active || !IsNotCompletedToday(t, ref) {
			continue
		}

		switch t.Recurrence {
		case models.RecurrenceDaily:
			c.Today++
			c.Week++
		case models.RecurrenceWeekly:
			if IsSameWeekdayAsToday(t, ref) {
				c.Today++
			}
			c.Week++
		case models.RecurrenceBiweekly:
			if t.NextDueDate != nil && IsWithinCurrentHalfMonth(*t.NextDueDate, ref) {
				c.Biweekly++
			}
		case models.RecurrenceMonthly:
			if t.NextDueDate != nil && IsWithinCurrentMonth(*t.NextDueDate, ref) {
				c.Month++
			}
		}
	}
	return c
}

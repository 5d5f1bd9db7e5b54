package models

import (
	"errors"
	"strings"
	"time"
)

// Recurrence is how often a task repeats.
type Recurrence string

const (
	RecurrenceDaily    Recurrence = "DAILY"
	RecurrenceWeekly   Recurrence = "WEEKLY"
	RecurrenceBiweekly Recurrence = "BIWEEKLY"
	RecurrenceMonthly  Recurrence = "MONTHLY"
)

// Valid reports whether r is one of the four known recurrence kinds.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Task represents a recurring household task.
type Task struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	Recurrence      Recurrence    `json:"recurrence"`
	Weekday         *time.Weekday `json:"weekday,omitempty"` // only for weekly tasks
	Active          bool          `json:"active"`
	LastCompletedAt *time.Time    `json:"lastCompletedAt,omitempty"`
	NextDueDate     *time.Time    `json:"nextDueDate,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title is required")
	}

	if !t.Recurrence.Valid() {
		return errors.New("recurrence must be 'DAILY', 'WEEKLY', 'BIWEEKLY', or 'MONTHLY'")
	}

	if t.Weekday != nil {
		if *t.Weekday < time.Sunday || *t.Weekday > time.Saturday {
			return errors.New("weekday must be between 0 and 6")
		}
		if t.Recurrence != RecurrenceWeekly {
			return errors.New("weekday is only allowed for weekly tasks")
		}
	}

	return nil
}

// Clone returns a deep copy so callers never share the optional fields.
func (t Task) Clone() Task {
	c := t
	if t.Weekday != nil {
		wd := *t.Weekday
		c.Weekday = &wd
	}
	if t.LastCompletedAt != nil {
		lc := *t.LastCompletedAt
		c.LastCompletedAt = &lc
	}
	if t.NextDueDate != nil {
		nd := *t.NextDueDate
		c.NextDueDate = &nd
	}
	return c
}

// WeekdayPtr is a convenience for building optional weekdays.
func WeekdayPtr(d time.Weekday) *time.Weekday {
	return &d
}

package service

import (
	"time"

	"choretracker/internal/models"
)

// Patch lists the fields to change on a task. Nil fields are left as they
// are.
type Patch struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	Recurrence  *models.Recurrence `json:"recurrence,omitempty"`
	Weekday     *time.Weekday      `json:"weekday,omitempty"`
	Active      *bool              `json:"active,omitempty"`
}

// Merge returns a copy of t with the patch applied, without rescheduling.
func (p Patch) Merge(t models.Task) models.Task {
	c := t.Clone()
	p.apply(&c)
	return c
}

// apply writes the patch into t and reports whether its next due date must
// be recomputed. A task that stops being weekly loses its weekday.
func (p Patch) apply(t *models.Task) bool {
	kindChanged := p.Recurrence != nil && *p.Recurrence != t.Recurrence
	weekdayChanged := p.Weekday != nil && (t.Weekday == nil || *t.Weekday != *p.Weekday)

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Recurrence != nil {
		t.Recurrence = *p.Recurrence
	}
	if p.Weekday != nil {
		t.Weekday = models.WeekdayPtr(*p.Weekday)
	}
	if p.Active != nil {
		t.Active = *p.Active
	}
	if t.Recurrence != models.RecurrenceWeekly {
		t.Weekday = nil
	}

	return kindChanged || (weekdayChanged && t.Recurrence == models.RecurrenceWeekly)
}

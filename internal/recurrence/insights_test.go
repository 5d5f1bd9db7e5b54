package recurrence

import (
	"strings"
	"testing"
	"time"

	"choretracker/internal/models"
)

func TestDescribe_Status(t *testing.T) {
	ref := dateAt(2025, 6, 10, 9, 0)

	tests := []struct {
		name string
		next *time.Time
		want Status
	}{
		{name: "no due date", next: nil, want: StatusUnscheduled},
		{name: "due later today", next: timePtr(dateAt(2025, 6, 10, 21, 0)), want: StatusDueToday},
		{name: "due tomorrow", next: timePtr(date(2025, 6, 11)), want: StatusDueTomorrow},
		{name: "due next week", next: timePtr(date(2025, 6, 17)), want: StatusUpcoming},
		{name: "due two days ago", next: timePtr(date(2025, 6, 8)), want: StatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(models.Task{Recurrence: models.RecurrenceDaily, NextDueDate: tt.next}, ref)
			if got.Status != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got.Status)
			}
		})
	}
}

func TestDescribe_Days(t *testing.T) {
	ref := dateAt(2025, 6, 10, 9, 0)
	task := models.Task{
		Recurrence:      models.RecurrenceMonthly,
		CreatedAt:       dateAt(2025, 6, 1, 20, 0),
		LastCompletedAt: timePtr(dateAt(2025, 6, 10, 7, 0)),
		NextDueDate:     timePtr(date(2025, 5, 28)),
	}

	got := Describe(task, ref)
	if got.DaysSinceCreated == nil || *got.DaysSinceCreated != 9 {
		t.Errorf("expected 9 days since creation, got %v", got.DaysSinceCreated)
	}
	if got.DaysSinceLastCompleted == nil || *got.DaysSinceLastCompleted != 0 {
		t.Errorf("expected 0 days since completion, got %v", got.DaysSinceLastCompleted)
	}
	if got.DaysUntilNext == nil || *got.DaysUntilNext != -13 {
		t.Errorf("expected -13 days until next, got %v", got.DaysUntilNext)
	}
	if got.OverdueDays != 13 {
		t.Errorf("expected 13 overdue days, got %d", got.OverdueDays)
	}
	if !got.CompletedToday {
		t.Error("expected completed today")
	}
	if got.Overdue {
		t.Error("expected a task completed today not to count as overdue")
	}
}

func TestDescribe_UnsetFields(t *testing.T) {
	got := Describe(models.Task{Recurrence: models.RecurrenceDaily}, date(2025, 6, 10))
	if got.DaysSinceCreated != nil || got.DaysSinceLastCompleted != nil || got.DaysUntilNext != nil {
		t.Errorf("expected unset optional days, got %+v", got)
	}
}

func TestSchedule(t *testing.T) {
	if got := Schedule(models.Task{Recurrence: models.RecurrenceWeekly, Weekday: models.WeekdayPtr(time.Wednesday)}); !strings.Contains(got, "Wednesday") {
		t.Errorf("expected weekday in schedule, got %q", got)
	}
	if got := Schedule(models.Task{Recurrence: models.RecurrenceWeekly}); !strings.Contains(got, "no weekday") {
		t.Errorf("expected fallback wording, got %q", got)
	}
}

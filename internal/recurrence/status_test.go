package recurrence

import (
	"testing"
	"time"

	"choretracker/internal/models"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestIsNotCompletedToday(t *testing.T) {
	ref := dateAt(2025, 6, 10, 15, 0)

	tests := []struct {
		name string
		task models.Task
		want bool
	}{
		{name: "never completed", task: models.Task{}, want: true},
		{name: "completed earlier today", task: models.Task{LastCompletedAt: timePtr(dateAt(2025, 6, 10, 0, 5))}, want: false},
		{name: "completed later today", task: models.Task{LastCompletedAt: timePtr(dateAt(2025, 6, 10, 23, 59))}, want: false},
		{name: "completed yesterday", task: models.Task{LastCompletedAt: timePtr(dateAt(2025, 6, 9, 23, 59))}, want: true},
		{name: "completed same day last month", task: models.Task{LastCompletedAt: timePtr(dateAt(2025, 5, 10, 15, 0))}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := IsNotCompletedToday(tt.task, ref)
			second := IsNotCompletedToday(tt.task, ref)
			if first != tt.want {
				t.Errorf("expected %v, got %v", tt.want, first)
			}
			if first != second {
				t.Error("expected repeated calls to agree")
			}
		})
	}
}

func TestIsDueToday(t *testing.T) {
	ref := dateAt(2025, 6, 10, 8, 0)

	if IsDueToday(models.Task{}, ref) {
		t.Error("expected task without due date not to be due")
	}
	if !IsDueToday(models.Task{NextDueDate: timePtr(dateAt(2025, 6, 10, 22, 0))}, ref) {
		t.Error("expected same calendar day to be due")
	}
	if IsDueToday(models.Task{NextDueDate: timePtr(date(2025, 6, 11))}, ref) {
		t.Error("expected tomorrow not to be due")
	}
}

func TestIsWeeklyOverdue(t *testing.T) {
	ref := dateAt(2025, 5, 15, 10, 0) // Thursday

	tests := []struct {
		name string
		task models.Task
		want bool
	}{
		{
			name: "monday task due monday not done",
			task: models.Task{Recurrence: models.RecurrenceWeekly, Weekday: models.WeekdayPtr(time.Monday), NextDueDate: timePtr(date(2025, 5, 12))},
			want: true,
		},
		{
			name: "monday task already done today",
			task: models.Task{Recurrence: models.RecurrenceWeekly, Weekday: models.WeekdayPtr(time.Monday), NextDueDate: timePtr(date(2025, 5, 12)), LastCompletedAt: timePtr(dateAt(2025, 5, 15, 7, 0))},
			want: false,
		},
		{
			name: "thursday task is today's, not overdue",
			task: models.Task{Recurrence: models.RecurrenceWeekly, Weekday: models.WeekdayPtr(time.Thursday), NextDueDate: timePtr(date(2025, 5, 8))},
			want: false,
		},
		{
			name: "friday task due tomorrow",
			task: models.Task{Recurrence: models.RecurrenceWeekly, Weekday: models.WeekdayPtr(time.Friday), NextDueDate: timePtr(date(2025, 5, 16))},
			want: false,
		},
		{
			name: "due earlier today is not before today",
			task: models.Task{Recurrence: models.RecurrenceWeekly, Weekday: models.WeekdayPtr(time.Monday), NextDueDate: timePtr(dateAt(2025, 5, 15, 1, 0))},
			want: false,
		},
		{
			name: "no due date",
			task: models.Task{Recurrence: models.RecurrenceWeekly, Weekday: models.WeekdayPtr(time.Monday)},
			want: false,
		},
		{
			name: "daily task is never weekly overdue",
			task: models.Task{Recurrence: models.RecurrenceDaily, NextDueDate: timePtr(date(2025, 5, 1))},
			want: false,
		},
		{
			name: "weekly without weekday due in the past",
			task: models.Task{Recurrence: models.RecurrenceWeekly, NextDueDate: timePtr(date(2025, 5, 10))},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWeeklyOverdue(tt.task, ref); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestIsBiweeklyOverdue(t *testing.T) {
	ref := date(2025, 6, 20) // second half starts on the 16th

	tests := []struct {
		name string
		task models.Task
		want bool
	}{
		{name: "due in first half", task: models.Task{Recurrence: models.RecurrenceBiweekly, NextDueDate: timePtr(date(2025, 6, 10))}, want: true},
		{name: "due on half start", task: models.Task{Recurrence: models.RecurrenceBiweekly, NextDueDate: timePtr(dateAt(2025, 6, 16, 18, 0))}, want: false},
		{name: "due later this half", task: models.Task{Recurrence: models.RecurrenceBiweekly, NextDueDate: timePtr(date(2025, 6, 28))}, want: false},
		{name: "completed today", task: models.Task{Recurrence: models.RecurrenceBiweekly, NextDueDate: timePtr(date(2025, 6, 10)), LastCompletedAt: timePtr(ref)}, want: false},
		{name: "monthly task", task: models.Task{Recurrence: models.RecurrenceMonthly, NextDueDate: timePtr(date(2025, 6, 10))}, want: false},
		{name: "no due date", task: models.Task{Recurrence: models.RecurrenceBiweekly}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBiweeklyOverdue(tt.task, ref); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestIsMonthlyOverdue(t *testing.T) {
	ref := date(2025, 6, 3)

	tests := []struct {
		name string
		task models.Task
		want bool
	}{
		{name: "due last month", task: models.Task{Recurrence: models.RecurrenceMonthly, NextDueDate: timePtr(dateAt(2025, 5, 31, 23, 0))}, want: true},
		{name: "due on month start", task: models.Task{Recurrence: models.RecurrenceMonthly, NextDueDate: timePtr(date(2025, 6, 1))}, want: false},
		{name: "due later this month", task: models.Task{Recurrence: models.RecurrenceMonthly, NextDueDate: timePtr(date(2025, 6, 28))}, want: false},
		{name: "completed today", task: models.Task{Recurrence: models.RecurrenceMonthly, NextDueDate: timePtr(date(2025, 5, 2)), LastCompletedAt: timePtr(dateAt(2025, 6, 3, 9, 0))}, want: false},
		{name: "biweekly task", task: models.Task{Recurrence: models.RecurrenceBiweekly, NextDueDate: timePtr(date(2025, 5, 2))}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMonthlyOverdue(tt.task, ref); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestIsOverdue_DispatchesByKind(t *testing.T) {
	ref := date(2025, 6, 20)
	past := timePtr(date(2025, 5, 1))

	if IsOverdue(models.Task{Recurrence: models.RecurrenceDaily, NextDueDate: past}, ref) {
		t.Error("expected daily tasks never to be overdue")
	}
	if !IsOverdue(models.Task{Recurrence: models.RecurrenceBiweekly, NextDueDate: past}, ref) {
		t.Error("expected biweekly task to be overdue")
	}
	if !IsOverdue(models.Task{Recurrence: models.RecurrenceMonthly, NextDueDate: past}, ref) {
		t.Error("expected monthly task to be overdue")
	}
}

func TestOverdueDays(t *testing.T) {
	due := dateAt(2025, 6, 10, 18, 0)

	if got := OverdueDays(nil, date(2025, 6, 20)); got != 0 {
		t.Errorf("expected 0 for missing due date, got %d", got)
	}
	if got := OverdueDays(&due, dateAt(2025, 6, 10, 23, 0)); got != 0 {
		t.Errorf("expected 0 on the due day, got %d", got)
	}
	if got := OverdueDays(&due, date(2025, 6, 1)); got != 0 {
		t.Errorf("expected 0 for a future due date, got %d", got)
	}
	if got := OverdueDays(&due, dateAt(2025, 6, 11, 8, 0)); got != 1 {
		t.Errorf("expected 1 the next morning, got %d", got)
	}

	prev := 0
	for i := 0; i < 40; i++ {
		ref := AddDays(date(2025, 6, 10), i)
		got := OverdueDays(&due, ref)
		if got < prev {
			t.Fatalf("expected non-decreasing overdue days, got %d after %d", got, prev)
		}
		if got != i {
			t.Errorf("day %d: expected %d, got %d", i, i, got)
		}
		prev = got
	}
}

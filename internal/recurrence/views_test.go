package recurrence

import (
	"reflect"
	"testing"
	"time"

	"choretracker/internal/models"
)

func viewFixture(ref time.Time) []models.Task {
	doneToday := timePtr(ref)
	return []models.Task{
		{ID: "daily", Recurrence: models.RecurrenceDaily, Active: true},
		{ID: "daily-done", Recurrence: models.RecurrenceDaily, Active: true, LastCompletedAt: doneToday},
		{ID: "daily-off", Recurrence: models.RecurrenceDaily, Active: false},
		{ID: "thu", Recurrence: models.RecurrenceWeekly, Weekday: models.WeekdayPtr(time.Thursday), Active: true, NextDueDate: timePtr(date(2025, 5, 22))},
		{ID: "mon-late", Recurrence: models.RecurrenceWeekly, Weekday: models.WeekdayPtr(time.Monday), Active: true, NextDueDate: timePtr(date(2025, 5, 12))},
		{ID: "sat", Recurrence: models.RecurrenceWeekly, Weekday: models.WeekdayPtr(time.Saturday), Active: true, NextDueDate: timePtr(date(2025, 5, 17))},
		{ID: "bi-now", Recurrence: models.RecurrenceBiweekly, Active: true, NextDueDate: timePtr(date(2025, 5, 20))},
		{ID: "bi-late", Recurrence: models.RecurrenceBiweekly, Active: true, NextDueDate: timePtr(date(2025, 4, 28))},
		{ID: "bi-done", Recurrence: models.RecurrenceBiweekly, Active: true, NextDueDate: timePtr(date(2025, 5, 29)), LastCompletedAt: doneToday},
		{ID: "mo-now", Recurrence: models.RecurrenceMonthly, Active: true, NextDueDate: timePtr(date(2025, 5, 28))},
		{ID: "mo-late", Recurrence: models.RecurrenceMonthly, Active: true, NextDueDate: timePtr(date(2025, 4, 15))},
		{ID: "mo-next", Recurrence: models.RecurrenceMonthly, Active: true, NextDueDate: timePtr(date(2025, 6, 15))},
	}
}

func TestFilter(t *testing.T) {
	ref := dateAt(2025, 5, 15, 10, 0) // Thursday, second half of May starts on the 16th
	tasks := viewFixture(ref)

	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{
			name: "today",
			opts: FilterOptions{View: ViewToday},
			want: []string{"daily", "thu"},
		},
		{
			name: "today with overdue",
			opts: FilterOptions{View: ViewToday, ShowOverdue: true},
			want: []string{"daily", "thu", "mon-late"},
		},
		{
			name: "today with completed and inactive",
			opts: FilterOptions{View: ViewToday, ShowCompleted: true, ShowInactive: true},
			want: []string{"daily", "daily-done", "daily-off", "thu"},
		},
		{
			name: "week",
			opts: FilterOptions{View: ViewWeek},
			want: []string{"daily", "thu", "mon-late", "sat"},
		},
		{
			name: "biweekly",
			opts: FilterOptions{View: ViewBiweekly},
			want: []string{},
		},
		{
			name: "biweekly with overdue",
			opts: FilterOptions{View: ViewBiweekly, ShowOverdue: true},
			want: []string{"bi-late"},
		},
		{
			name: "biweekly with completed",
			opts: FilterOptions{View: ViewBiweekly, ShowCompleted: true},
			want: []string{"bi-done"},
		},
		{
			name: "month",
			opts: FilterOptions{View: ViewMonth},
			want: []string{"mo-now"},
		},
		{
			name: "month with overdue",
			opts: FilterOptions{View: ViewMonth, ShowOverdue: true},
			want: []string{"mo-now", "mo-late"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(tasks, tt.opts, ref))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilter_BiweeklySecondHalf(t *testing.T) {
	ref := date(2025, 5, 20)
	tasks := viewFixture(ref)

	got := ids(Filter(tasks, FilterOptions{View: ViewBiweekly}, ref))
	if want := []string{"bi-now"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseView(t *testing.T) {
	if v, err := ParseView(""); err != nil || v != ViewToday {
		t.Errorf("expected empty view to default to today, got %q, %v", v, err)
	}
	if _, err := ParseView("year"); err == nil {
		t.Error("expected unknown view to fail")
	}
}

func TestGroupTasks(t *testing.T) {
	tasks := []models.Task{
		{ID: "fri", Recurrence: models.RecurrenceWeekly, Weekday: models.WeekdayPtr(time.Friday)},
		{ID: "mo", Recurrence: models.RecurrenceMonthly},
		{ID: "d1", Recurrence: models.RecurrenceDaily},
		{ID: "mon", Recurrence: models.RecurrenceWeekly, Weekday: models.WeekdayPtr(time.Monday)},
		{ID: "none", Recurrence: models.RecurrenceWeekly},
		{ID: "d2", Recurrence: models.RecurrenceDaily},
	}

	groups := GroupTasks(tasks)
	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(groups))
	}

	wantKinds := []GroupKind{GroupDaily, GroupWeekly, GroupWeekly, GroupMonthly}
	wantIDs := [][]string{{"d1", "d2"}, {"mon"}, {"fri"}, {"mo"}}
	for i, g := range groups {
		if g.Kind != wantKinds[i] {
			t.Errorf("group %d: expected kind %q, got %q", i, wantKinds[i], g.Kind)
		}
		if !reflect.DeepEqual(ids(g.Tasks), wantIDs[i]) {
			t.Errorf("group %d: expected %v, got %v", i, wantIDs[i], ids(g.Tasks))
		}
	}
	if *groups[1].Weekday != time.Monday || *groups[2].Weekday != time.Friday {
		t.Error("expected weekly groups ordered monday then friday")
	}
}

func TestCompletedHistory(t *testing.T) {
	tasks := []models.Task{
		{ID: "old", Recurrence: models.RecurrenceDaily, LastCompletedAt: timePtr(date(2025, 5, 1))},
		{ID: "never", Recurrence: models.RecurrenceDaily},
		{ID: "new", Recurrence: models.RecurrenceDaily, LastCompletedAt: timePtr(date(2025, 5, 14))},
		{ID: "bi", Recurrence: models.RecurrenceBiweekly, LastCompletedAt: timePtr(date(2025, 5, 2))},
	}

	groups := CompletedHistory(tasks)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if want := []string{"new", "old"}; !reflect.DeepEqual(ids(groups[0].Tasks), want) {
		t.Errorf("expected %v, got %v", want, ids(groups[0].Tasks))
	}
	if groups[1].Kind != GroupBiweekly {
		t.Errorf("expected biweekly group, got %q", groups[1].Kind)
	}
}

func TestInactiveHistory(t *testing.T) {
	tasks := []models.Task{
		{ID: "on", Recurrence: models.RecurrenceDaily, Active: true},
		{ID: "off", Recurrence: models.RecurrenceMonthly, Active: false},
	}

	groups := InactiveHistory(tasks)
	if len(groups) != 1 || groups[0].Kind != GroupMonthly || groups[0].Tasks[0].ID != "off" {
		t.Errorf("expected a single monthly group with the inactive task, got %+v", groups)
	}
}

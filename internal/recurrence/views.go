package recurrence

import (
	"fmt"
	"sort"
	"time"

	"choretracker/internal/models"
)

// View is one of the time-scoped task tabs.
type View string

const (
	ViewToday    View = "today"
	ViewWeek     View = "week"
	ViewBiweekly View = "biweekly"
	ViewMonth    View = "month"
)

// ParseView validates a view name; an empty name means today.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case "":
		return ViewToday, nil
	case ViewToday, ViewWeek, ViewBiweekly, ViewMonth:
		return v, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// FilterOptions are the visibility toggles applied on top of a view.
type FilterOptions struct {
	View          View
	ShowInactive  bool
	ShowOverdue   bool
	ShowCompleted bool
}

// Filter returns the tasks visible in a view, in input order.
func Filter(tasks []models.Task, opts FilterOptions, ref time.Time) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if visible(t, opts, ref) {
			out = append(out, t)
		}
	}
	return out
}

func visible(t models.Task, opts FilterOptions, ref time.Time) bool {
	if !opts.ShowInactive && !t.Active {
		return false
	}
	open := IsNotCompletedToday(t, ref)
	if !open && !opts.ShowCompleted {
		return false
	}

	switch opts.View {
	case ViewToday:
		switch t.Recurrence {
		case models.RecurrenceDaily:
			return true
		case models.RecurrenceWeekly:
			if IsSameWeekdayAsToday(t, ref) {
				return true
			}
			return opts.ShowOverdue && open && IsWeeklyOverdue(t, ref)
		}
		return false
	case ViewWeek:
		return t.Recurrence == models.RecurrenceDaily || t.Recurrence == models.RecurrenceWeekly
	case ViewBiweekly:
		if t.Recurrence != models.RecurrenceBiweekly {
			return false
		}
		return !open || inPeriod(t, opts.ShowOverdue, ref, IsWithinCurrentHalfMonth, StartOfCurrentHalfMonth(ref))
	case ViewMonth:
		if t.Recurrence != models.RecurrenceMonthly {
			return false
		}
		return !open || inPeriod(t, opts.ShowOverdue, ref, IsWithinCurrentMonth, StartOfCurrentMonth(ref))
	}
	return true
}

func inPeriod(t models.Task, showOverdue bool, ref time.Time, within func(t, ref time.Time) bool, start time.Time) bool {
	if t.NextDueDate == nil {
		return false
	}
	if within(*t.NextDueDate, ref) {
		return true
	}
	return showOverdue && dueBefore(t, start)
}

// GroupKind identifies what a group collects.
type GroupKind string

const (
	GroupDaily    GroupKind = "daily"
	GroupWeekly   GroupKind = "weekly"
	GroupBiweekly GroupKind = "biweekly"
	GroupMonthly  GroupKind = "monthly"
)

// Group is a labelled slice of tasks sharing a recurrence (and weekday for weekly).
type Group struct {
	Kind    GroupKind     `json:"kind"`
	Weekday *time.Weekday `json:"weekday,omitempty"`
	Tasks   []models.Task `json:"tasks"`
}

// GroupTasks buckets tasks into daily, one group per weekday in ascending
// order, biweekly, then monthly. Weekly tasks without a weekday and empty
// groups are left out. Task order inside a group follows the input.
func GroupTasks(tasks []models.Task) []Group {
	var daily, biweekly, monthly []models.Task
	byDay := make(map[time.Weekday][]models.Task)

	for _, t := range tasks {
		switch t.Recurrence {
		case models.RecurrenceDaily:
			daily = append(daily, t)
		case models.RecurrenceWeekly:
			if t.Weekday != nil {
				byDay[*t.Weekday] = append(byDay[*t.Weekday], t)
			}
		case models.RecurrenceBiweekly:
			biweekly = append(biweekly, t)
		case models.RecurrenceMonthly:
			monthly = append(monthly, t)
		}
	}

	days := make([]time.Weekday, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	var groups []Group
	if len(daily) > 0 {
		groups = append(groups, Group{Kind: GroupDaily, Tasks: daily})
	}
	for _, d := range days {
		groups = append(groups, Group{Kind: GroupWeekly, Weekday: models.WeekdayPtr(d), Tasks: byDay[d]})
	}
	if len(biweekly) > 0 {
		groups = append(groups, Group{Kind: GroupBiweekly, Tasks: biweekly})
	}
	if len(monthly) > 0 {
		groups = append(groups, Group{Kind: GroupMonthly, Tasks: monthly})
	}
	return groups
}

// CompletedHistory groups every task that has ever been completed, most
// recent completion first inside each group.
func CompletedHistory(tasks []models.Task) []Group {
	var done []models.Task
	for _, t := range tasks {
		if t.LastCompletedAt != nil {
			done = append(done, t)
		}
	}
	return GroupTasks(Sort(done, SortByLast, models.SortDesc))
}

// InactiveHistory groups the deactivated tasks.
func InactiveHistory(tasks []models.Task) []Group {
	var inactive []models.Task
	for _, t := range tasks {
		if !t.Active {
			inactive = append(inactive, t)
		}
	}
	return GroupTasks(inactive)
}

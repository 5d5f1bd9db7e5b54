package scheduler

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"choretracker/internal/models"
	"choretracker/internal/recurrence"
)

// Summary renders a plain-text report of the chores open on ref's day and
// the ones running late.
func Summary(tasks []models.Task, ref time.Time) string {
	counts := recurrence.ComputeCounts(tasks, ref)
	today := recurrence.Sort(
		recurrence.Filter(tasks, recurrence.FilterOptions{View: recurrence.ViewToday}, ref),
		recurrence.SortByTitle, models.SortAsc,
	)

	type late struct {
		task models.Task
		days int
	}
	var overdue []late
	for _, t := range tasks {
		if !t.Active || !recurrence.IsOverdue(t, ref) {
			continue
		}
		overdue = append(overdue, late{task: t, days: recurrence.OverdueDays(t.NextDueDate, ref)})
	}
	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].days > overdue[j].days
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Chores for %s\n", ref.Format("Mon 02 Jan 2006"))
	fmt.Fprintf(&b, "open: today %d, week %d, half-month %d, month %d\n",
		counts.Today, counts.Week, counts.Biweekly, counts.Month)

	b.WriteString("\nDue today\n")
	if len(today) == 0 {
		b.WriteString("- nothing left for today\n")
	}
	for _, t := range today {
		fmt.Fprintf(&b, "- %s\n", t.Title)
	}

	b.WriteString("\nOverdue\n")
	if len(overdue) == 0 {
		b.WriteString("- nothing overdue\n")
	}
	for _, o := range overdue {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", o.task.Title, recurrence.Schedule(o.task), plural(o.days, "day"))
	}

	return strings.TrimSpace(b.String())
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

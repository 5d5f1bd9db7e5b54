package recurrence

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"choretracker/internal/models"
)

// SortKey names a column tasks can be ordered by.
type SortKey string

const (
	SortByTitle      SortKey = "title"
	SortByRecurrence SortKey = "recurrence"
	SortByWeekday    SortKey = "weekday"
	SortByNext       SortKey = "next"
	SortByLast       SortKey = "last"
)

// ParseSortKey validates a sort key coming from a request or stored preferences.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortByTitle, SortByRecurrence, SortByWeekday, SortByNext, SortByLast:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// WeekdayOrdinal orders daily tasks first, weekly tasks by weekday, and
// everything else last.
func WeekdayOrdinal(t models.Task) int {
	switch {
	case t.Recurrence == models.RecurrenceDaily:
		return -1
	case t.Recurrence == models.RecurrenceWeekly && t.Weekday != nil:
		return int(*t.Weekday)
	default:
		return 99
	}
}

// Sort returns a new slice ordered by key. Text keys use Brazilian Portuguese
// collation ignoring case and accents. Ties keep their input order.
func Sort(tasks []models.Task, key SortKey, dir models.SortDirection) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)

	mult := 1
	if dir == models.SortDesc {
		mult = -1
	}

	// A collator keeps internal buffers, so each call gets its own.
	col := collate.New(language.BrazilianPortuguese, collate.IgnoreCase, collate.IgnoreDiacritics)

	sort.SliceStable(sorted, func(i, j int) bool {
		return compareBy(col, sorted[i], sorted[j], key)*mult < 0
	})
	return sorted
}

func compareBy(col *collate.Collator, a, b models.Task, key SortKey) int {
	switch key {
	case SortByTitle:
		return col.CompareString(a.Title, b.Title)
	case SortByRecurrence:
		return col.CompareString(strings.ToLower(string(a.Recurrence)), strings.ToLower(string(b.Recurrence)))
	case SortByWeekday:
		return compareInt64(int64(WeekdayOrdinal(a)), int64(WeekdayOrdinal(b)))
	case SortByNext:
		return compareInt64(nextValue(a), nextValue(b))
	case SortByLast:
		return compareInt64(lastValue(a), lastValue(b))
	}
	return 0
}

// nextValue sorts a missing due date after every real one.
func nextValue(t models.Task) int64 {
	if t.NextDueDate == nil {
		return math.MaxInt64
	}
	return t.NextDueDate.UnixMilli()
}

// lastValue sorts a task never completed as the earliest.
func lastValue(t models.Task) int64 {
	if t.LastCompletedAt == nil {
		return 0
	}
	return t.LastCompletedAt.UnixMilli()
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

package recurrence

import (
	"sort"
	"strings"
	"time"
)

// Filter selects items by status.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterDue      Filter = "due"
	FilterOverdue  Filter = "overdue"
	FilterUpcoming Filter = "upcoming"
)

// SortKey orders a view.
type SortKey string

const (
	SortNone    SortKey = ""
	SortName    SortKey = "name"
	SortDueDate SortKey = "dueDate"
)

// ParseFilter never fails: unknown values mean FilterAll.
func ParseFilter(raw string) Filter {
	switch f := Filter(strings.ToLower(strings.TrimSpace(raw))); f {
	case FilterDue, FilterOverdue, FilterUpcoming:
		return f
	default:
		return FilterAll
	}
}

// ParseSortKey accepts "name", "dueDate" and "due_date"; anything else keeps source order.
func ParseSortKey(raw string) SortKey {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "name":
		return SortName
	case "duedate", "due_date", "due":
		return SortDueDate
	default:
		return SortNone
	}
}

func (f Filter) keep(s Status) bool {
	switch f {
	case FilterDue, FilterOverdue:
		return s == StatusOverdue
	case FilterUpcoming:
		return s == StatusDueSoon
	default:
		return true
	}
}

// View filters then sorts items as of now. The input slice is not modified.
func View(items []Item, filter Filter, key SortKey, now time.Time) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if filter.keep(Classify(it, now)) {
			out = append(out, it)
		}
	}

	switch key {
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Label < out[j].Label
		})
	case SortDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			return DaysUntilDue(out[i].NextDueAt, now) < DaysUntilDue(out[j].NextDueAt, now)
		})
	}
	return out
}

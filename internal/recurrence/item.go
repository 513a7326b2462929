// Package recurrence computes due dates and display status for recurring
// items such as chores and plants. Every function here is pure: callers own
// the items and persist the results.
package recurrence

import (
	"fmt"
	"strings"
	"time"
)

// Item is the generic shape both chores and plants are adapted to.
type Item struct {
	ID              uint
	Label           string
	Owner           string
	Frequency       Frequency
	CreatedAt       time.Time
	LastCompletedAt *time.Time
	NextDueAt       time.Time
	// DoneThisCycle is set by MarkDone and only honoured until NextDueAt.
	DoneThisCycle bool
}

// Anchor is the time the next due date is computed from.
func (it Item) Anchor() time.Time {
	if it.LastCompletedAt != nil {
		return *it.LastCompletedAt
	}
	return it.CreatedAt
}

// Schedule validates the item and derives NextDueAt from its anchor. It is
// used on create and whenever the frequency changes.
func Schedule(it Item) (Item, error) {
	if strings.TrimSpace(it.Label) == "" {
		return Item{}, fmt.Errorf("%w: label is required", ErrInvalidState)
	}
	next, err := NextDue(it.Anchor(), it.Frequency)
	if err != nil {
		return Item{}, err
	}
	it.NextDueAt = next
	return it, nil
}

// MarkDone records a completion at the given time and starts a new cycle.
func MarkDone(it Item, at time.Time) (Item, error) {
	if at.Before(it.CreatedAt) {
		return Item{}, fmt.Errorf("%w: completion %s precedes creation %s",
			ErrInvalidState, at.Format(time.RFC3339), it.CreatedAt.Format(time.RFC3339))
	}
	next, err := NextDue(at, it.Frequency)
	if err != nil {
		return Item{}, err
	}
	completed := at
	it.LastCompletedAt = &completed
	it.NextDueAt = next
	it.DoneThisCycle = true
	return it, nil
}

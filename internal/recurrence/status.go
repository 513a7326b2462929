package recurrence

import "time"

// Status is the derived display state of an item.
type Status string

const (
	StatusDone      Status = "done"
	StatusOverdue   Status = "overdue"
	StatusDueSoon   Status = "due_soon"
	StatusScheduled Status = "scheduled"
)

// DueSoonDays is the upper bound (inclusive) of the due-soon window.
const DueSoonDays = 2

const day = 24 * time.Hour

// DaysUntilDue is the ceiling of the day difference, so "due in 3 hours"
// counts as 1 and "3 hours late" counts as 0.
func DaysUntilDue(nextDue, now time.Time) int {
	d := nextDue.Sub(now)
	days := d / day
	if d%day > 0 {
		days++
	}
	return int(days)
}

// Classify derives the status of it at now. The done flag expires once now
// reaches NextDueAt.
func Classify(it Item, now time.Time) Status {
	if it.DoneThisCycle && now.Before(it.NextDueAt) {
		return StatusDone
	}
	switch days := DaysUntilDue(it.NextDueAt, now); {
	case days <= 0:
		return StatusOverdue
	case days <= DueSoonDays:
		return StatusDueSoon
	default:
		return StatusScheduled
	}
}

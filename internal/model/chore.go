package model

import (
	"time"

	"life-dashboard/internal/recurrence"
)

// Chore is one entry of the cleaning schedule.
type Chore struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"not null" json:"name"`
	AssignedTo    string     `json:"assignedTo"`
	Frequency     string     `gorm:"not null;default:weekly" json:"frequency"`
	LastDoneAt    *time.Time `json:"lastDone"`
	NextDueAt     time.Time  `gorm:"index" json:"nextDue"`
	DoneThisCycle bool       `gorm:"default:false" json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Item adapts the chore to the recurrence engine.
func (c Chore) Item() (recurrence.Item, error) {
	freq, err := recurrence.ParseFrequency(c.Frequency)
	if err != nil {
		return recurrence.Item{}, err
	}
	return recurrence.Item{
		ID:              c.ID,
		Label:           NormalizeLabel(c.Name),
		Owner:           c.AssignedTo,
		Frequency:       freq,
		CreatedAt:       c.CreatedAt,
		LastCompletedAt: c.LastDoneAt,
		NextDueAt:       c.NextDueAt,
		DoneThisCycle:   c.DoneThisCycle,
	}, nil
}

// Apply copies the engine-owned fields back onto the chore.
func (c *Chore) Apply(it recurrence.Item) {
	c.Name = it.Label
	c.AssignedTo = it.Owner
	c.Frequency = it.Frequency.String()
	c.LastDoneAt = it.LastCompletedAt
	c.NextDueAt = it.NextDueAt
	c.DoneThisCycle = it.DoneThisCycle
}

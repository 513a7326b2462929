package model

import (
	"time"

	"life-dashboard/internal/recurrence"
)

// HealthStatus describes how a plant is doing.
type HealthStatus string

const (
	HealthHealthy        HealthStatus = "healthy"
	HealthNeedsAttention HealthStatus = "needs_attention"
	HealthSick           HealthStatus = "sick"
)

// Valid reports whether h is one of the known states.
func (h HealthStatus) Valid() bool {
	switch h {
	case HealthHealthy, HealthNeedsAttention, HealthSick:
		return true
	}
	return false
}

// WateringEntry is one line of a plant's watering history.
type WateringEntry struct {
	Date time.Time `json:"date"`
}

// Plant is a watered-on-interval house plant.
type Plant struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Name              string          `gorm:"not null" json:"name"`
	Type              string          `json:"type"`
	WaterIntervalDays int             `gorm:"not null" json:"waterInterval"`
	LastWateredAt     *time.Time      `json:"lastWatered"`
	NextWateringAt    time.Time       `gorm:"index" json:"nextWatering"`
	Notes             string          `json:"notes"`
	Image             string          `json:"image,omitempty"` // base64, no data-URL header
	HealthStatus      HealthStatus    `gorm:"default:healthy" json:"healthStatus"`
	WateringHistory   []WateringEntry `gorm:"serializer:json" json:"wateringHistory"`
	DoneThisCycle     bool            `gorm:"default:false" json:"-"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// Item adapts the plant to the recurrence engine.
func (p Plant) Item() (recurrence.Item, error) {
	freq, err := recurrence.EveryDays(p.WaterIntervalDays)
	if err != nil {
		return recurrence.Item{}, err
	}
	return recurrence.Item{
		ID:              p.ID,
		Label:           NormalizeLabel(p.Name),
		Frequency:       freq,
		CreatedAt:       p.CreatedAt,
		LastCompletedAt: p.LastWateredAt,
		NextDueAt:       p.NextWateringAt,
		DoneThisCycle:   p.DoneThisCycle,
	}, nil
}

// Apply copies the engine-owned fields back onto the plant.
func (p *Plant) Apply(it recurrence.Item) {
	p.Name = it.Label
	p.WaterIntervalDays = it.Frequency.Days
	p.LastWateredAt = it.LastCompletedAt
	p.NextWateringAt = it.NextDueAt
	p.DoneThisCycle = it.DoneThisCycle
}

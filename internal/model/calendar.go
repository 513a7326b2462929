package model

import "time"

// EventCategory tags calendar entries for colouring in the UI.
type EventCategory string

const (
	CategoryMeeting     EventCategory = "meeting"
	CategoryAppointment EventCategory = "appointment"
	CategoryReminder    EventCategory = "reminder"
	CategoryDeadline    EventCategory = "deadline"
	CategoryOther       EventCategory = "other"
)

// ParseEventCategory maps empty input to appointment and rejects unknown values.
func ParseEventCategory(raw string) (EventCategory, bool) {
	switch c := EventCategory(raw); c {
	case "":
		return CategoryAppointment, true
	case CategoryMeeting, CategoryAppointment, CategoryReminder, CategoryDeadline, CategoryOther:
		return c, true
	}
	return "", false
}

// CalendarEvent is a single calendar entry.
type CalendarEvent struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `json:"description"`
	StartAt     time.Time     `gorm:"not null;index" json:"start"`
	EndAt       time.Time     `gorm:"not null" json:"end"`
	Category    EventCategory `gorm:"default:appointment" json:"category"`
	AllDay      bool          `gorm:"default:false" json:"allDay"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

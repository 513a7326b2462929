package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"life-dashboard/internal/model"
)

// EventRepository handles CRUD for calendar events.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *model.CalendarEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// List returns events overlapping [from, to). Zero bounds are open.
func (r *EventRepository) List(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	q := r.db.WithContext(ctx).Order("start_at ASC")
	if !from.IsZero() {
		q = q.Where("end_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("start_at < ?", to)
	}
	var events []model.CalendarEvent
	if err := q.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, id uint, fn func(*model.CalendarEvent) error) (*model.CalendarEvent, error) {
	event, err := mutate(r.db.WithContext(ctx), id, fn)
	if err != nil {
		return nil, fmt.Errorf("update event %d: %w", id, err)
	}
	return event, nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := deleteByID[model.CalendarEvent](r.db.WithContext(ctx), id); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	return nil
}

package service

import (
	"context"
	"strings"
	"time"

	"life-dashboard/internal/model"
	"life-dashboard/internal/repository"
)

// EventInput represents data required to create a calendar event.
type EventInput struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Category    string
	AllDay      bool
}

// EventPatch holds the fields an edit may change; nil means unchanged.
type EventPatch struct {
	Title       *string
	Description *string
	Start       *time.Time
	End         *time.Time
	Category    *string
	AllDay      *bool
}

// CalendarService validates and stores calendar events.
type CalendarService struct {
	repo *repository.EventRepository
}

func NewCalendarService(repo *repository.EventRepository) *CalendarService {
	return &CalendarService{repo: repo}
}

func (s *CalendarService) List(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, invalid("range end %s before start %s", to.Format(time.RFC3339), from.Format(time.RFC3339))
	}
	return s.repo.List(ctx, from, to)
}

func (s *CalendarService) Create(ctx context.Context, input EventInput) (*model.CalendarEvent, error) {
	category, ok := model.ParseEventCategory(input.Category)
	if !ok {
		return nil, invalid("unknown category %q", input.Category)
	}
	event := model.CalendarEvent{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		StartAt:     input.Start,
		EndAt:       input.End,
		Category:    category,
		AllDay:      input.AllDay,
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *CalendarService) Update(ctx context.Context, id uint, patch EventPatch) (*model.CalendarEvent, error) {
	return s.repo.Update(ctx, id, func(e *model.CalendarEvent) error {
		if patch.Title != nil {
			e.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			e.Description = *patch.Description
		}
		if patch.Start != nil {
			e.StartAt = *patch.Start
		}
		if patch.End != nil {
			e.EndAt = *patch.End
		}
		if patch.AllDay != nil {
			e.AllDay = *patch.AllDay
		}
		if patch.Category != nil {
			category, ok := model.ParseEventCategory(*patch.Category)
			if !ok {
				return invalid("unknown category %q", *patch.Category)
			}
			e.Category = category
		}
		return validateEvent(*e)
	})
}

func (s *CalendarService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func validateEvent(e model.CalendarEvent) error {
	switch {
	case e.Title == "":
		return invalid("title is required")
	case e.StartAt.IsZero() || e.EndAt.IsZero():
		return invalid("start and end are required")
	case e.EndAt.Before(e.StartAt):
		return invalid("end %s before start %s", e.EndAt.Format(time.RFC3339), e.StartAt.Format(time.RFC3339))
	}
	return nil
}

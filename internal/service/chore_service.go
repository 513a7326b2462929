package service

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"life-dashboard/internal/model"
	"life-dashboard/internal/recurrence"
	"life-dashboard/internal/repository"
)

// ChoreInput represents data required to create a chore.
type ChoreInput struct {
	Name       string
	AssignedTo string
	Frequency  string
}

// ChorePatch holds the fields an edit may change; nil means unchanged.
type ChorePatch struct {
	Name       *string
	AssignedTo *string
	Frequency  *string
}

// ChoreView is a chore with its status derived at read time.
type ChoreView struct {
	model.Chore
	Status       recurrence.Status `json:"status"`
	DaysUntilDue int               `json:"daysUntilDue"`
}

// ChoreService binds the cleaning schedule to the recurrence engine.
type ChoreService struct {
	repo   *repository.ChoreRepository
	now    func() time.Time
	logger *log.Logger
}

func NewChoreService(repo *repository.ChoreRepository, now func() time.Time, logger *log.Logger) *ChoreService {
	if now == nil {
		now = time.Now
	}
	return &ChoreService{repo: repo, now: now, logger: logger}
}

func (s *ChoreService) view(c model.Chore, now time.Time) ChoreView {
	v := ChoreView{Chore: c, DaysUntilDue: recurrence.DaysUntilDue(c.NextDueAt, now)}
	if it, err := c.Item(); err == nil {
		v.Status = recurrence.Classify(it, now)
	}
	return v
}

// List returns the filtered and sorted cleaning schedule.
func (s *ChoreService) List(ctx context.Context, filter, sortKey string) ([]ChoreView, error) {
	chores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	byID := make(map[uint]model.Chore, len(chores))
	items := make([]recurrence.Item, 0, len(chores))
	for _, c := range chores {
		it, err := c.Item()
		if err != nil {
			s.logger.Warn("skipping chore with unusable frequency", "id", c.ID, "frequency", c.Frequency, "err", err)
			continue
		}
		byID[c.ID] = c
		items = append(items, it)
	}

	ordered := recurrence.View(items, recurrence.ParseFilter(filter), recurrence.ParseSortKey(sortKey), now)
	out := make([]ChoreView, 0, len(ordered))
	for _, it := range ordered {
		out = append(out, s.view(byID[it.ID], now))
	}
	return out, nil
}

func (s *ChoreService) Get(ctx context.Context, id uint) (*ChoreView, error) {
	chore, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := s.view(*chore, s.now())
	return &v, nil
}

func (s *ChoreService) Create(ctx context.Context, input ChoreInput) (*ChoreView, error) {
	freq, err := recurrence.ParseFrequency(input.Frequency)
	if err != nil {
		return nil, err
	}

	now := s.now()
	it, err := recurrence.Schedule(recurrence.Item{
		Label:     model.NormalizeLabel(input.Name),
		Owner:     model.NormalizeLabel(input.AssignedTo),
		Frequency: freq,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	chore := model.Chore{CreatedAt: now}
	chore.Apply(it)
	if err := s.repo.Create(ctx, &chore); err != nil {
		return nil, err
	}

	s.logger.Info("chore created", "id", chore.ID, "name", chore.Name, "next_due", chore.NextDueAt)
	v := s.view(chore, now)
	return &v, nil
}

// Update edits a chore. The due date is recomputed from the last completion
// (or creation), never from now, so an edit does not count as doing the chore.
func (s *ChoreService) Update(ctx context.Context, id uint, patch ChorePatch) (*ChoreView, error) {
	chore, err := s.repo.Update(ctx, id, func(c *model.Chore) error {
		if patch.Name != nil {
			c.Name = model.NormalizeLabel(*patch.Name)
		}
		if patch.AssignedTo != nil {
			c.AssignedTo = model.NormalizeLabel(*patch.AssignedTo)
		}
		if patch.Frequency != nil {
			c.Frequency = *patch.Frequency
		}
		it, err := c.Item()
		if err != nil {
			return err
		}
		it, err = recurrence.Schedule(it)
		if err != nil {
			return err
		}
		c.Apply(it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	v := s.view(*chore, s.now())
	return &v, nil
}

// MarkDone completes the chore now and starts its next cycle.
func (s *ChoreService) MarkDone(ctx context.Context, id uint) (*ChoreView, error) {
	now := s.now()
	chore, err := s.repo.Update(ctx, id, func(c *model.Chore) error {
		it, err := c.Item()
		if err != nil {
			return err
		}
		it, err = recurrence.MarkDone(it, now)
		if err != nil {
			return err
		}
		c.Apply(it)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("chore done", "id", chore.ID, "next_due", chore.NextDueAt)
	v := s.view(*chore, now)
	return &v, nil
}

func (s *ChoreService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("chore deleted", "id", id)
	return nil
}

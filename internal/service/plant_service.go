package service

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"life-dashboard/internal/model"
	"life-dashboard/internal/recurrence"
	"life-dashboard/internal/repository"
)

const (
	// MaxPlantImageBytes bounds the base64 image stored with a plant.
	MaxPlantImageBytes = 1 << 20
	maxWateringHistory = 100
)

// PlantInput represents data required to create a plant.
type PlantInput struct {
	Name          string
	Type          string
	WaterInterval *int
	LastWatered   *time.Time
	Notes         string
	Image         string
	HealthStatus  string
}

// PlantPatch holds the fields an edit may change; nil means unchanged.
type PlantPatch struct {
	Name          *string
	Type          *string
	WaterInterval *int
	LastWatered   *time.Time
	Notes         *string
	Image         *string
	HealthStatus  *string
}

// PlantView is a plant with its watering status derived at read time.
type PlantView struct {
	model.Plant
	Status       recurrence.Status `json:"status"`
	DaysUntilDue int               `json:"daysUntilWatering"`
}

// PlantService binds plant care to the recurrence engine.
type PlantService struct {
	repo            *repository.PlantRepository
	defaultInterval int
	now             func() time.Time
	logger          *log.Logger
}

func NewPlantService(repo *repository.PlantRepository, defaultInterval int, now func() time.Time, logger *log.Logger) *PlantService {
	if now == nil {
		now = time.Now
	}
	if defaultInterval < 1 {
		defaultInterval = 7
	}
	return &PlantService{repo: repo, defaultInterval: defaultInterval, now: now, logger: logger}
}

func (s *PlantService) view(p model.Plant, now time.Time) PlantView {
	v := PlantView{Plant: p, DaysUntilDue: recurrence.DaysUntilDue(p.NextWateringAt, now)}
	if it, err := p.Item(); err == nil {
		v.Status = recurrence.Classify(it, now)
	}
	return v
}

// List returns the filtered and sorted plants.
func (s *PlantService) List(ctx context.Context, filter, sortKey string) ([]PlantView, error) {
	plants, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	byID := make(map[uint]model.Plant, len(plants))
	items := make([]recurrence.Item, 0, len(plants))
	for _, p := range plants {
		it, err := p.Item()
		if err != nil {
			s.logger.Warn("skipping plant with unusable interval", "id", p.ID, "interval", p.WaterIntervalDays, "err", err)
			continue
		}
		byID[p.ID] = p
		items = append(items, it)
	}

	ordered := recurrence.View(items, recurrence.ParseFilter(filter), recurrence.ParseSortKey(sortKey), now)
	out := make([]PlantView, 0, len(ordered))
	for _, it := range ordered {
		out = append(out, s.view(byID[it.ID], now))
	}
	return out, nil
}

func (s *PlantService) Get(ctx context.Context, id uint) (*PlantView, error) {
	plant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := s.view(*plant, s.now())
	return &v, nil
}

func (s *PlantService) Create(ctx context.Context, input PlantInput) (*PlantView, error) {
	now := s.now()

	interval := s.defaultInterval
	if input.WaterInterval != nil {
		interval = *input.WaterInterval
	}
	health, err := parseHealth(input.HealthStatus)
	if err != nil {
		return nil, err
	}
	image := plainImage(input.Image)
	if err := checkPlantExtras(image, input.LastWatered, now); err != nil {
		return nil, err
	}

	plant := model.Plant{
		Name:              model.NormalizeLabel(input.Name),
		Type:              input.Type,
		WaterIntervalDays: interval,
		LastWateredAt:     input.LastWatered,
		Notes:             input.Notes,
		Image:             image,
		HealthStatus:      health,
		CreatedAt:         now,
	}
	if input.LastWatered != nil {
		plant.WateringHistory = []model.WateringEntry{{Date: *input.LastWatered}}
	}
	if err := schedulePlant(&plant); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &plant); err != nil {
		return nil, err
	}

	s.logger.Info("plant created", "id", plant.ID, "name", plant.Name, "next_watering", plant.NextWateringAt)
	v := s.view(plant, now)
	return &v, nil
}

// Update edits a plant; the next watering is recomputed from the last
// watering (or creation), never from now.
func (s *PlantService) Update(ctx context.Context, id uint, patch PlantPatch) (*PlantView, error) {
	now := s.now()
	plant, err := s.repo.Update(ctx, id, func(p *model.Plant) error {
		if patch.Image != nil {
			p.Image = plainImage(*patch.Image)
		}
		if err := checkPlantExtras(p.Image, patch.LastWatered, now); err != nil {
			return err
		}
		if patch.HealthStatus != nil {
			health, err := parseHealth(*patch.HealthStatus)
			if err != nil {
				return err
			}
			p.HealthStatus = health
		}
		if patch.Name != nil {
			p.Name = model.NormalizeLabel(*patch.Name)
		}
		if patch.Type != nil {
			p.Type = *patch.Type
		}
		if patch.Notes != nil {
			p.Notes = *patch.Notes
		}
		if patch.WaterInterval != nil {
			p.WaterIntervalDays = *patch.WaterInterval
		}
		if patch.LastWatered != nil {
			p.LastWateredAt = patch.LastWatered
		}
		return schedulePlant(p)
	})
	if err != nil {
		return nil, err
	}
	v := s.view(*plant, now)
	return &v, nil
}

// Water records a watering now and appends it to the history.
func (s *PlantService) Water(ctx context.Context, id uint) (*PlantView, error) {
	now := s.now()
	plant, err := s.repo.Update(ctx, id, func(p *model.Plant) error {
		it, err := p.Item()
		if err != nil {
			return err
		}
		it, err = recurrence.MarkDone(it, now)
		if err != nil {
			return err
		}
		p.Apply(it)
		p.WateringHistory = append(p.WateringHistory, model.WateringEntry{Date: now})
		if n := len(p.WateringHistory); n > maxWateringHistory {
			p.WateringHistory = p.WateringHistory[n-maxWateringHistory:]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("plant watered", "id", plant.ID, "next_watering", plant.NextWateringAt)
	v := s.view(*plant, now)
	return &v, nil
}

func (s *PlantService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("plant deleted", "id", id)
	return nil
}

func schedulePlant(p *model.Plant) error {
	it, err := p.Item()
	if err != nil {
		return err
	}
	it, err = recurrence.Schedule(it)
	if err != nil {
		return err
	}
	p.Apply(it)
	return nil
}

func parseHealth(raw string) (model.HealthStatus, error) {
	if raw == "" {
		return model.HealthHealthy, nil
	}
	h := model.HealthStatus(raw)
	if !h.Valid() {
		return "", invalid("unknown health status %q", raw)
	}
	return h, nil
}

func checkPlantExtras(image string, lastWatered *time.Time, now time.Time) error {
	if len(image) > MaxPlantImageBytes {
		return invalid("image exceeds %d bytes", MaxPlantImageBytes)
	}
	if image != "" {
		if _, err := base64.StdEncoding.DecodeString(image); err != nil {
			return invalid("image is not valid base64: %v", err)
		}
	}
	if lastWatered != nil && lastWatered.After(now) {
		return invalid("last watering %s is in the future", lastWatered.Format(time.RFC3339))
	}
	return nil
}

// plainImage drops a data URL header such as "data:image/png;base64,".
func plainImage(image string) string {
	image = strings.TrimSpace(image)
	if strings.HasPrefix(image, "data:") {
		if i := strings.IndexByte(image, ','); i >= 0 {
			return image[i+1:]
		}
	}
	return image
}

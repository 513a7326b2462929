package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"life-dashboard/internal/model"
)

// PlantRepository handles CRUD for plants.
type PlantRepository struct {
	db *gorm.DB
}

func NewPlantRepository(db *gorm.DB) *PlantRepository {
	return &PlantRepository{db: db}
}

func (r *PlantRepository) Create(ctx context.Context, plant *model.Plant) error {
	if err := r.db.WithContext(ctx).Create(plant).Error; err != nil {
		return fmt.Errorf("create plant: %w", err)
	}
	return nil
}

func (r *PlantRepository) List(ctx context.Context) ([]model.Plant, error) {
	var plants []model.Plant
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&plants).Error; err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	return plants, nil
}

func (r *PlantRepository) FindByID(ctx context.Context, id uint) (*model.Plant, error) {
	var plant model.Plant
	if err := r.db.WithContext(ctx).First(&plant, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &plant, nil
}

func (r *PlantRepository) Update(ctx context.Context, id uint, fn func(*model.Plant) error) (*model.Plant, error) {
	plant, err := mutate(r.db.WithContext(ctx), id, fn)
	if err != nil {
		return nil, fmt.Errorf("update plant %d: %w", id, err)
	}
	return plant, nil
}

func (r *PlantRepository) Delete(ctx context.Context, id uint) error {
	if err := deleteByID[model.Plant](r.db.WithContext(ctx), id); err != nil {
		return fmt.Errorf("delete plant %d: %w", id, err)
	}
	return nil
}

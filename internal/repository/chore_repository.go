package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"life-dashboard/internal/model"
)

// ChoreRepository handles CRUD for cleaning schedule chores.
type ChoreRepository struct {
	db *gorm.DB
}

func NewChoreRepository(db *gorm.DB) *ChoreRepository {
	return &ChoreRepository{db: db}
}

func (r *ChoreRepository) Create(ctx context.Context, chore *model.Chore) error {
	if err := r.db.WithContext(ctx).Create(chore).Error; err != nil {
		return fmt.Errorf("create chore: %w", err)
	}
	return nil
}

// List returns chores in insertion order; views sort them afterwards.
func (r *ChoreRepository) List(ctx context.Context) ([]model.Chore, error) {
	var chores []model.Chore
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&chores).Error; err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}
	return chores, nil
}

func (r *ChoreRepository) FindByID(ctx context.Context, id uint) (*model.Chore, error) {
	var chore model.Chore
	if err := r.db.WithContext(ctx).First(&chore, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &chore, nil
}

// Update loads the chore, applies fn and saves it in one transaction.
func (r *ChoreRepository) Update(ctx context.Context, id uint, fn func(*model.Chore) error) (*model.Chore, error) {
	chore, err := mutate(r.db.WithContext(ctx), id, fn)
	if err != nil {
		return nil, fmt.Errorf("update chore %d: %w", id, err)
	}
	return chore, nil
}

// Delete removes a chore permanently.
func (r *ChoreRepository) Delete(ctx context.Context, id uint) error {
	if err := deleteByID[model.Chore](r.db.WithContext(ctx), id); err != nil {
		return fmt.Errorf("delete chore %d: %w", id, err)
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"life-dashboard/internal/model"
)

// WeatherRepository keeps the history of weather lookups.
type WeatherRepository struct {
	db *gorm.DB
}

func NewWeatherRepository(db *gorm.DB) *WeatherRepository {
	return &WeatherRepository{db: db}
}

func (r *WeatherRepository) Save(ctx context.Context, snap *model.WeatherSnapshot) error {
	if err := r.db.WithContext(ctx).Create(snap).Error; err != nil {
		return fmt.Errorf("save weather: %w", err)
	}
	return nil
}

// Latest returns the newest snapshot for city, matched case-insensitively.
func (r *WeatherRepository) Latest(ctx context.Context, city string) (*model.WeatherSnapshot, error) {
	var snap model.WeatherSnapshot
	err := r.db.WithContext(ctx).
		Where("LOWER(city) = LOWER(?)", city).
		Order("observed_at DESC, id DESC").
		First(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("latest weather: %w", err)
	}
	return &snap, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-dashboard/internal/model"
	"life-dashboard/internal/recurrence"
)

func intPtr(n int) *int { return &n }

func TestPlantService_CreateUsesDefaultInterval(t *testing.T) {
	f := newFixture(t)

	v, err := f.plants.Create(context.Background(), PlantInput{Name: "Monstera", Type: "Aronstab"})
	require.NoError(t, err)

	assert.Equal(t, 7, v.WaterIntervalDays)
	assert.Equal(t, model.HealthHealthy, v.HealthStatus)
	assert.Empty(t, v.WateringHistory)
	assert.True(t, v.NextWateringAt.Equal(monday.AddDate(0, 0, 7)))
	assert.Equal(t, recurrence.StatusScheduled, v.Status)
}

func TestPlantService_CreateAnchorsOnLastWatered(t *testing.T) {
	f := newFixture(t)

	last := monday.Add(-48 * time.Hour)
	v, err := f.plants.Create(context.Background(), PlantInput{Name: "Ficus", WaterInterval: intPtr(3), LastWatered: &last})
	require.NoError(t, err)

	assert.True(t, v.NextWateringAt.Equal(last.AddDate(0, 0, 3)))
	assert.Equal(t, 1, v.DaysUntilDue)
	assert.Equal(t, recurrence.StatusDueSoon, v.Status)
	require.Len(t, v.WateringHistory, 1)
	assert.True(t, v.WateringHistory[0].Date.Equal(last))
}

func TestPlantService_CreateRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.plants.Create(ctx, PlantInput{Name: "Ficus", WaterInterval: intPtr(0)})
	assert.True(t, errors.Is(err, recurrence.ErrInvalidFrequency), err)

	_, err = f.plants.Create(ctx, PlantInput{Name: "Ficus", HealthStatus: "wilting"})
	assert.True(t, errors.Is(err, ErrValidation), err)

	future := monday.Add(time.Hour)
	_, err = f.plants.Create(ctx, PlantInput{Name: "Ficus", LastWatered: &future})
	assert.True(t, errors.Is(err, ErrValidation), err)

	_, err = f.plants.Create(ctx, PlantInput{Name: "Ficus", Image: strings.Repeat("A", MaxPlantImageBytes+1)})
	assert.True(t, errors.Is(err, ErrValidation), err)

	_, err = f.plants.Create(ctx, PlantInput{Name: ""})
	assert.True(t, errors.Is(err, recurrence.ErrInvalidState), err)
}

func TestPlantService_WaterAppendsHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.plants.Create(ctx, PlantInput{Name: "Kaktus", WaterInterval: intPtr(14)})
	require.NoError(t, err)

	f.clock.Advance(20 * 24 * time.Hour)
	before, err := f.plants.List(ctx, "due", "")
	require.NoError(t, err)
	require.Len(t, before, 1)

	watered, err := f.plants.Water(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, recurrence.StatusDone, watered.Status)
	assert.Equal(t, 14, watered.DaysUntilDue)
	require.Len(t, watered.WateringHistory, 1)
	assert.True(t, watered.WateringHistory[0].Date.Equal(f.clock.T))

	f.clock.Advance(time.Hour)
	again, err := f.plants.Water(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, again.WateringHistory, 2)

	after, err := f.plants.List(ctx, "due", "")
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestPlantService_UpdateKeepsAnchor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.plants.Create(ctx, PlantInput{Name: "Efeu", WaterInterval: intPtr(5)})
	require.NoError(t, err)

	f.clock.Advance(2 * 24 * time.Hour)
	health := string(model.HealthNeedsAttention)
	v, err := f.plants.Update(ctx, created.ID, PlantPatch{WaterInterval: intPtr(3), HealthStatus: &health})
	require.NoError(t, err)
	assert.True(t, v.NextWateringAt.Equal(monday.AddDate(0, 0, 3)))
	assert.Equal(t, model.HealthNeedsAttention, v.HealthStatus)

	bad := "dead"
	_, err = f.plants.Update(ctx, created.ID, PlantPatch{HealthStatus: &bad})
	assert.True(t, errors.Is(err, ErrValidation))

	got, err := f.plants.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.WaterIntervalDays)
}

func TestPlantService_ImageDataURL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v, err := f.plants.Create(ctx, PlantInput{Name: "Aloe", Image: "data:image/png;base64,aGFsbG8="})
	require.NoError(t, err)
	assert.Equal(t, "aGFsbG8=", v.Image)

	_, err = f.plants.Create(ctx, PlantInput{Name: "Aloe", Image: "not base64!"})
	assert.True(t, errors.Is(err, ErrValidation))
}

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-dashboard/internal/recurrence"
)

func TestChoreItem_AdaptsAndAppliesBack(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	chore := Chore{ID: 4, Name: "  Bad putzen ", AssignedTo: "Anna", Frequency: "weekly", CreatedAt: created}

	it, err := chore.Item()
	require.NoError(t, err)
	assert.Equal(t, "Bad putzen", it.Label)
	assert.Equal(t, recurrence.Every(recurrence.Weekly), it.Frequency)

	done, err := recurrence.MarkDone(it, created.Add(2*time.Hour))
	require.NoError(t, err)
	chore.Apply(done)

	assert.Equal(t, "Bad putzen", chore.Name)
	assert.Equal(t, "weekly", chore.Frequency)
	assert.True(t, chore.DoneThisCycle)
	require.NotNil(t, chore.LastDoneAt)
	assert.Equal(t, created.Add(7*24*time.Hour+2*time.Hour), chore.NextDueAt)
}

func TestChoreItem_RejectsUnknownFrequency(t *testing.T) {
	_, err := Chore{Name: "x", Frequency: "sometimes"}.Item()
	assert.ErrorIs(t, err, recurrence.ErrInvalidFrequency)
}

func TestPlantItem_UsesDayInterval(t *testing.T) {
	watered := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	plant := Plant{Name: "Monstera", WaterIntervalDays: 5, LastWateredAt: &watered, CreatedAt: watered.Add(time.Hour)}

	it, err := plant.Item()
	require.NoError(t, err)
	it, err = recurrence.Schedule(it)
	require.NoError(t, err)
	plant.Apply(it)
	assert.Equal(t, watered.AddDate(0, 0, 5), plant.NextWateringAt)

	_, err = Plant{Name: "Kaktus", WaterIntervalDays: 0}.Item()
	assert.ErrorIs(t, err, recurrence.ErrInvalidFrequency)
}

func TestNormalizeLabel_ComposesCombiningMarks(t *testing.T) {
	decomposed := "Mu\u0308ll"
	assert.Equal(t, "Müll", NormalizeLabel(" "+decomposed+" "))
}

func TestParseEventCategory(t *testing.T) {
	c, ok := ParseEventCategory("")
	assert.True(t, ok)
	assert.Equal(t, CategoryAppointment, c)

	c, ok = ParseEventCategory("deadline")
	assert.True(t, ok)
	assert.Equal(t, CategoryDeadline, c)

	_, ok = ParseEventCategory("party")
	assert.False(t, ok)
}

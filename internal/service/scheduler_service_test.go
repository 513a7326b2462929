package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-dashboard/internal/logging"
)

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("07:30")
	require.NoError(t, err)
	assert.Equal(t, "0 30 7 * * *", spec)

	for _, bad := range []string{"7", "24:00", "07:60", "ab:cd"} {
		_, err := buildDailySpec(bad)
		assert.Error(t, err, bad)
	}
}

func TestSchedulerService_Entries(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	s := NewSchedulerService(loc, logging.Discard())

	_, err = s.ScheduleInterval(0, func() {})
	assert.Error(t, err)

	id, err := s.ScheduleDaily("07:30", func() {})
	require.NoError(t, err)
	_, err = s.ScheduleInterval(30*time.Minute, func() {})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	next := s.Next(id).In(loc)
	require.False(t, next.IsZero())
	assert.Equal(t, 7, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.True(t, next.After(time.Now()))
}

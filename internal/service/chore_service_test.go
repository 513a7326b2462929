package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-dashboard/internal/logging"
	"life-dashboard/internal/recurrence"
	"life-dashboard/internal/repository"
	"life-dashboard/internal/testutil"
)

var monday = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	clock    *testutil.Clock
	chores   *ChoreService
	plants   *PlantService
	calendar *CalendarService
	finance  *FinanceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	clock := &testutil.Clock{T: monday}
	logger := logging.Discard()
	return &fixture{
		clock:    clock,
		chores:   NewChoreService(repository.NewChoreRepository(db), clock.Now, logger),
		plants:   NewPlantService(repository.NewPlantRepository(db), 7, clock.Now, logger),
		calendar: NewCalendarService(repository.NewEventRepository(db)),
		finance:  NewFinanceService(repository.NewFinanceRepository(db)),
	}
}

func TestChoreService_CreateSchedulesFromCreation(t *testing.T) {
	f := newFixture(t)

	v, err := f.chores.Create(context.Background(), ChoreInput{Name: "  Bad putzen ", AssignedTo: "Anna", Frequency: "weekly"})
	require.NoError(t, err)

	assert.NotZero(t, v.ID)
	assert.Equal(t, "Bad putzen", v.Name)
	assert.Equal(t, "weekly", v.Frequency)
	assert.Nil(t, v.LastDoneAt)
	assert.True(t, v.NextDueAt.Equal(monday.AddDate(0, 0, 7)))
	assert.Equal(t, 7, v.DaysUntilDue)
	assert.Equal(t, recurrence.StatusScheduled, v.Status)
}

func TestChoreService_CreateRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.chores.Create(ctx, ChoreInput{Name: "Bad", Frequency: "fortnightly"})
	assert.True(t, errors.Is(err, recurrence.ErrInvalidFrequency), err)

	_, err = f.chores.Create(ctx, ChoreInput{Name: "Bad", Frequency: ""})
	assert.True(t, errors.Is(err, recurrence.ErrInvalidFrequency), err)

	_, err = f.chores.Create(ctx, ChoreInput{Name: "   ", Frequency: "daily"})
	assert.True(t, errors.Is(err, recurrence.ErrInvalidState), err)
}

func TestChoreService_WeeklyCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.chores.Create(ctx, ChoreInput{Name: "Müll", Frequency: "weekly"})
	require.NoError(t, err)

	f.clock.T = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	overdue, err := f.chores.List(ctx, "overdue", "")
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, -2, overdue[0].DaysUntilDue)
	assert.Equal(t, recurrence.StatusOverdue, overdue[0].Status)

	done, err := f.chores.MarkDone(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, recurrence.StatusDone, done.Status)
	require.NotNil(t, done.LastDoneAt)
	assert.True(t, done.LastDoneAt.Equal(f.clock.T))
	assert.True(t, done.NextDueAt.Equal(time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC)))

	f.clock.Advance(6 * 24 * time.Hour)
	got, err := f.chores.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, recurrence.StatusDone, got.Status)

	f.clock.Advance(24 * time.Hour)
	got, err = f.chores.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, recurrence.StatusOverdue, got.Status)
	assert.Equal(t, 0, got.DaysUntilDue)
}

func TestChoreService_UpdateRecomputesFromAnchor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.chores.Create(ctx, ChoreInput{Name: "Fenster", Frequency: "weekly"})
	require.NoError(t, err)

	f.clock.Advance(3 * 24 * time.Hour)
	name := "Fenster putzen"
	renamed, err := f.chores.Update(ctx, created.ID, ChorePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Fenster putzen", renamed.Name)
	assert.True(t, renamed.NextDueAt.Equal(created.NextDueAt), "rename must not move the due date")

	freq := "monthly"
	monthly, err := f.chores.Update(ctx, created.ID, ChorePatch{Frequency: &freq})
	require.NoError(t, err)
	assert.True(t, monthly.NextDueAt.Equal(monday.AddDate(0, 1, 0)))

	bad := "sometimes"
	_, err = f.chores.Update(ctx, created.ID, ChorePatch{Frequency: &bad})
	assert.True(t, errors.Is(err, recurrence.ErrInvalidFrequency))

	got, err := f.chores.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "monthly", got.Frequency)
}

func TestChoreService_ListSortsByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"Staubsaugen", "Bad putzen", "Müll"} {
		_, err := f.chores.Create(ctx, ChoreInput{Name: name, Frequency: "daily"})
		require.NoError(t, err)
	}

	list, err := f.chores.List(ctx, "all", "name")
	require.NoError(t, err)
	var names []string
	for _, c := range list {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Bad putzen", "Müll", "Staubsaugen"}, names)

	unsorted, err := f.chores.List(ctx, "bogus", "bogus")
	require.NoError(t, err)
	require.Len(t, unsorted, 3)
	assert.Equal(t, "Staubsaugen", unsorted[0].Name)
}

func TestChoreService_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.chores.Get(ctx, 99)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
	_, err = f.chores.MarkDone(ctx, 99)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
	assert.True(t, errors.Is(f.chores.Delete(ctx, 99), repository.ErrNotFound))

	created, err := f.chores.Create(ctx, ChoreInput{Name: "Bad", Frequency: "daily"})
	require.NoError(t, err)
	require.NoError(t, f.chores.Delete(ctx, created.ID))
	_, err = f.chores.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() Report {
	at := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	return Report{
		GeneratedAt: at,
		Overdue: []ReportEntry{
			{Kind: KindChore, ID: 1, Name: "Müll rausbringen", Owner: "Anna", DueAt: at.AddDate(0, 0, -2), Days: -2},
			{Kind: KindPlant, ID: 2, Name: "Monstera", DueAt: at, Days: 0},
		},
		DueSoon: []ReportEntry{
			{Kind: KindChore, ID: 3, Name: "Bad putzen", DueAt: at.AddDate(0, 0, 1), Days: 1},
			{Kind: KindPlant, ID: 4, Name: "Ficus", DueAt: at.AddDate(0, 0, 2), Days: 2},
		},
	}
}

func TestReport_TextGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "report_text", []byte(sampleReport().Text()))
}

func TestReport_HTMLEscapes(t *testing.T) {
	r := sampleReport()
	r.DueSoon[0].Name = "Küche <gründlich>"
	r.DueSoon[0].Owner = "Tom & Jerry"

	out := r.HTML()
	assert.Contains(t, out, "<b>Überfällig</b>")
	assert.Contains(t, out, "Küche &lt;gründlich&gt; (Tom &amp; Jerry)")
	assert.NotContains(t, out, "<gründlich>")
}

func TestReport_Empty(t *testing.T) {
	r := Report{GeneratedAt: monday}
	assert.True(t, r.Empty())
	out := r.Text()
	assert.Contains(t, out, "— nichts überfällig")
	assert.Contains(t, out, "— nichts fällig")
}

func TestReminderService_Build(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	daily, err := f.chores.Create(ctx, ChoreInput{Name: "Spülmaschine", AssignedTo: "Ben", Frequency: "daily"})
	require.NoError(t, err)
	_, err = f.chores.Create(ctx, ChoreInput{Name: "Bad putzen", Frequency: "weekly"})
	require.NoError(t, err)
	plant, err := f.plants.Create(ctx, PlantInput{Name: "Ficus", WaterInterval: intPtr(3)})
	require.NoError(t, err)
	watered, err := f.plants.Create(ctx, PlantInput{Name: "Efeu", WaterInterval: intPtr(1)})
	require.NoError(t, err)

	f.clock.Advance(48 * time.Hour)
	_, err = f.plants.Water(ctx, watered.ID)
	require.NoError(t, err)

	report, err := NewReminderService(f.chores, f.plants, f.clock.Now).Build(ctx)
	require.NoError(t, err)

	require.Len(t, report.Overdue, 1)
	assert.Equal(t, daily.ID, report.Overdue[0].ID)
	assert.Equal(t, KindChore, report.Overdue[0].Kind)
	assert.Equal(t, "Ben", report.Overdue[0].Owner)
	assert.Equal(t, -1, report.Overdue[0].Days)

	require.Len(t, report.DueSoon, 1)
	assert.Equal(t, plant.ID, report.DueSoon[0].ID)
	assert.Equal(t, KindPlant, report.DueSoon[0].Kind)
	assert.Equal(t, 1, report.DueSoon[0].Days)
	assert.True(t, report.GeneratedAt.Equal(f.clock.T))
}

package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturecast/internal/repository"
	"venturecast/internal/testutil"
)

const importFixture = `{
	"meta": {"name": "imported", "start": "2026-02-01", "horizonMonths": 36, "initialReserve": 50000},
	"timeline": [{"id": "launch", "month": 4}],
	"tasks": [
		{"id": "build", "duration": "3m", "oneOffCost": 30000},
		{"id": "ship", "duration": "1m", "dependsOn": ["build"]}
	],
	"revenueStreams": [{
		"id": "saas",
		"pricePerUnit": {"min": 20, "mode": 25, "max": 35},
		"grossMarginPct": 0.8,
		"acquisitionRate": {"min": 5, "mode": 10, "max": 20},
		"cac": 60,
		"unlockEvent": "launch"
	}]
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "venture.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportService_CreatesVenture(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewImportService(testutil.NewTestUoW(database))
	ctx := context.Background()

	res, err := svc.ImportFile(ctx, writeFixture(t, importFixture))
	require.NoError(t, err)
	assert.False(t, res.Replaced)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "imported", res.Venture.Venture.Meta.Name)

	got, err := repository.NewSQLiteVentureRepo(database).GetByName(ctx, "imported")
	require.NoError(t, err)
	assert.Len(t, got.Venture.Tasks, 2)
	assert.Len(t, got.Venture.RevenueStreams, 1)
}

func TestImportService_ReimportReplacesByName(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewImportService(testutil.NewTestUoW(database))
	ctx := context.Background()

	first, err := svc.ImportFile(ctx, writeFixture(t, importFixture))
	require.NoError(t, err)

	second, err := svc.ImportFile(ctx, writeFixture(t, importFixture))
	require.NoError(t, err)
	assert.True(t, second.Replaced)
	assert.Equal(t, first.Venture.ID, second.Venture.ID, "identity is stable across reimports")

	list, err := repository.NewSQLiteVentureRepo(database).List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestImportService_RejectsInvalidDefinition(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewImportService(testutil.NewTestUoW(database))
	ctx := context.Background()

	_, err := svc.ImportFile(ctx, writeFixture(t, `{"tasks": []}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meta is required")

	list, err := repository.NewSQLiteVentureRepo(database).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "nothing is stored on a rejected import")
}

func TestImportService_SurfacesWarnings(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewImportService(testutil.NewTestUoW(database))

	withUnknownEvent := `{
		"meta": {"name": "warned", "start": "2026-02-01", "horizonMonths": 24},
		"tasks": [{"id": "build", "duration": "2m"}],
		"revenueStreams": [{
			"id": "saas",
			"pricePerUnit": 25,
			"grossMarginPct": 0.8,
			"acquisitionRate": 10,
			"cac": 60,
			"unlockEvent": "launch"
		}]
	}`
	res, err := svc.ImportFile(context.Background(), writeFixture(t, withUnknownEvent))
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "unlockEvent", res.Warnings[0].Field)
}

func TestImportService_MissingFile(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewImportService(testutil.NewTestUoW(database))

	_, err := svc.ImportFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesSchema(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"ventures", "runs"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s must exist", table)
	}

	// The label column arrives via ALTER TABLE on top of the base schema.
	_, err = database.Exec(`SELECT label FROM runs LIMIT 1`)
	assert.NoError(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestMigrate_VentureNameUnique(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	insert := `INSERT INTO ventures (id, name, start_date, horizon_months, payload, created_at, updated_at)
		VALUES (?, ?, '2026-01-01', 12, '{}', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`
	_, err = database.Exec(insert, "v1", "demo")
	require.NoError(t, err)
	_, err = database.Exec(insert, "v2", "demo")
	assert.Error(t, err, "venture names are unique")
}

func TestMigrate_RunsCascadeOnVentureDelete(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO ventures (id, name, start_date, horizon_months, payload, created_at, updated_at)
		VALUES ('v1', 'demo', '2026-01-01', 12, '{}', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO runs (id, venture_id, created_at)
		VALUES ('r1', 'v1', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = database.Exec(`DELETE FROM ventures WHERE id = 'v1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count))
	assert.Zero(t, count, "deleting a venture removes its runs")
}

func TestMigrate_RunKindAndScenarioConstrained(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO ventures (id, name, start_date, horizon_months, payload, created_at, updated_at)
		VALUES ('v1', 'demo', '2026-01-01', 12, '{}', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO runs (id, venture_id, kind, created_at)
		VALUES ('r1', 'v1', 'forecast', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err)

	_, err = database.Exec(`INSERT INTO runs (id, venture_id, scenario, created_at)
		VALUES ('r2', 'v1', 'worst', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err)
}

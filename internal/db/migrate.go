package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS ventures (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		currency        TEXT NOT NULL DEFAULT 'USD',
		start_date      TEXT NOT NULL,
		horizon_months  INTEGER NOT NULL CHECK(horizon_months > 0),
		initial_reserve REAL NOT NULL DEFAULT 0,
		payload         TEXT NOT NULL,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_ventures_name ON ventures(name)`,

	`CREATE TABLE IF NOT EXISTS runs (
		id               TEXT PRIMARY KEY,
		venture_id       TEXT NOT NULL REFERENCES ventures(id) ON DELETE CASCADE,
		kind             TEXT NOT NULL DEFAULT 'simulation'
		                 CHECK(kind IN ('simulation','sensitivity','optimization')),
		scenario         TEXT NOT NULL DEFAULT 'mode'
		                 CHECK(scenario IN ('min','mode','max')),
		controls         TEXT NOT NULL DEFAULT '{}',
		profitable_month INTEGER,
		invested_capital REAL NOT NULL DEFAULT 0,
		roi_5y           REAL NOT NULL DEFAULT 0,
		final_cash       REAL NOT NULL DEFAULT 0,
		months           TEXT NOT NULL DEFAULT '[]',
		warnings         TEXT NOT NULL DEFAULT '[]',
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_venture ON runs(venture_id)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,

	// Add label so saved runs can be named for later comparison.
	`ALTER TABLE runs ADD COLUMN label TEXT NOT NULL DEFAULT ''`,
}

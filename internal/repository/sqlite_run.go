package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"venturecast/internal/db"
	"venturecast/internal/domain"
)

// SQLiteRunRepo implements RunRepo on SQLite. Controls, the monthly series
// and warnings are stored as JSON; headline metrics get their own columns so
// runs can be compared without decoding the series.
type SQLiteRunRepo struct {
	db db.DBTX
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo.
func NewSQLiteRunRepo(dbtx db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: dbtx}
}

func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.SavedRun) error {
	controls, err := json.Marshal(run.Controls)
	if err != nil {
		return fmt.Errorf("encoding run controls: %w", err)
	}
	months, err := json.Marshal(run.Months)
	if err != nil {
		return fmt.Errorf("encoding run months: %w", err)
	}
	warnings, err := json.Marshal(run.Warnings)
	if err != nil {
		return fmt.Errorf("encoding run warnings: %w", err)
	}

	query := `INSERT INTO runs (id, venture_id, kind, label, scenario, controls,
			profitable_month, invested_capital, roi_5y, final_cash, months, warnings, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		run.ID,
		run.VentureID,
		string(run.Kind),
		run.Label,
		string(run.Scenario),
		string(controls),
		nullableIntToValue(run.ProfitableMonth),
		run.InvestedCapital,
		run.ROI5Year,
		run.FinalCash,
		string(months),
		string(warnings),
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

const runColumns = `id, venture_id, kind, label, scenario, controls,
	profitable_month, invested_capital, roi_5y, final_cash, months, warnings, created_at`

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.SavedRun, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run: %w", ErrNotFound)
	}
	return run, err
}

func (r *SQLiteRunRepo) ListByVenture(ctx context.Context, ventureID string) ([]*domain.SavedRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE venture_id = ? ORDER BY created_at`, ventureID)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.SavedRun
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

func (r *SQLiteRunRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanRun(scan func(...any) error) (*domain.SavedRun, error) {
	var run domain.SavedRun
	var kind, scenario, controls, months, warnings, createdAt string
	var profitableMonth sql.NullInt64

	if err := scan(
		&run.ID, &run.VentureID, &kind, &run.Label, &scenario, &controls,
		&profitableMonth, &run.InvestedCapital, &run.ROI5Year, &run.FinalCash,
		&months, &warnings, &createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.Kind = domain.RunKind(kind)
	run.Scenario = domain.Scenario(scenario)
	run.ProfitableMonth = nullableIntFromSQL(profitableMonth)
	if err := json.Unmarshal([]byte(controls), &run.Controls); err != nil {
		return nil, fmt.Errorf("decoding run controls: %w", err)
	}
	if err := json.Unmarshal([]byte(months), &run.Months); err != nil {
		return nil, fmt.Errorf("decoding run months: %w", err)
	}
	if err := json.Unmarshal([]byte(warnings), &run.Warnings); err != nil {
		return nil, fmt.Errorf("decoding run warnings: %w", err)
	}
	run.CreatedAt = parseTime(createdAt, time.RFC3339)
	return &run, nil
}

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

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// SQLiteVentureRepo implements VentureRepo on SQLite. The venture definition
// is stored as a JSON payload; indexed metadata columns are derived from it.
type SQLiteVentureRepo struct {
	db db.DBTX
}

// NewSQLiteVentureRepo creates a new SQLiteVentureRepo.
func NewSQLiteVentureRepo(dbtx db.DBTX) *SQLiteVentureRepo {
	return &SQLiteVentureRepo{db: dbtx}
}

func (r *SQLiteVentureRepo) Create(ctx context.Context, v *domain.StoredVenture) error {
	payload, err := json.Marshal(v.Venture)
	if err != nil {
		return fmt.Errorf("encoding venture payload: %w", err)
	}
	query := `INSERT INTO ventures (id, name, currency, start_date, horizon_months, initial_reserve, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		v.ID,
		v.Venture.Meta.Name,
		v.Venture.Meta.Currency,
		v.Venture.Meta.Start.Format(dateLayout),
		v.Venture.Meta.HorizonMonths,
		v.Venture.Meta.InitialReserve,
		string(payload),
		v.CreatedAt.Format(time.RFC3339),
		v.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting venture: %w", err)
	}
	return nil
}

func (r *SQLiteVentureRepo) GetByID(ctx context.Context, id string) (*domain.StoredVenture, error) {
	query := `SELECT id, payload, created_at, updated_at FROM ventures WHERE id = ?`
	return r.scanVenture(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteVentureRepo) GetByName(ctx context.Context, name string) (*domain.StoredVenture, error) {
	query := `SELECT id, payload, created_at, updated_at FROM ventures WHERE name = ?`
	return r.scanVenture(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteVentureRepo) List(ctx context.Context) ([]*domain.StoredVenture, error) {
	query := `SELECT id, payload, created_at, updated_at FROM ventures ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing ventures: %w", err)
	}
	defer rows.Close()

	var ventures []*domain.StoredVenture
	for rows.Next() {
		v, err := scanVentureRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		ventures = append(ventures, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ventures: %w", err)
	}
	return ventures, nil
}

func (r *SQLiteVentureRepo) Update(ctx context.Context, v *domain.StoredVenture) error {
	payload, err := json.Marshal(v.Venture)
	if err != nil {
		return fmt.Errorf("encoding venture payload: %w", err)
	}
	query := `UPDATE ventures SET name = ?, currency = ?, start_date = ?, horizon_months = ?, initial_reserve = ?, payload = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		v.Venture.Meta.Name,
		v.Venture.Meta.Currency,
		v.Venture.Meta.Start.Format(dateLayout),
		v.Venture.Meta.HorizonMonths,
		v.Venture.Meta.InitialReserve,
		string(payload),
		nowUTC(),
		v.ID,
	)
	if err != nil {
		return fmt.Errorf("updating venture: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("venture %s: %w", v.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteVentureRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ventures WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting venture: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("venture %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteVentureRepo) scanVenture(row *sql.Row) (*domain.StoredVenture, error) {
	v, err := scanVentureRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("venture: %w", ErrNotFound)
	}
	return v, err
}

func scanVentureRow(scan func(...any) error) (*domain.StoredVenture, error) {
	var v domain.StoredVenture
	var payload, createdAt, updatedAt string

	if err := scan(&v.ID, &payload, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning venture: %w", err)
	}

	v.Venture = &domain.Venture{}
	if err := json.Unmarshal([]byte(payload), v.Venture); err != nil {
		return nil, fmt.Errorf("decoding venture payload: %w", err)
	}
	v.CreatedAt = parseTime(createdAt, time.RFC3339)
	v.UpdatedAt = parseTime(updatedAt, time.RFC3339)
	return &v, nil
}

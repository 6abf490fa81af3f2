package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertVenture(ctx context.Context, tx DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO ventures (id, name, start_date, horizon_months, payload, created_at, updated_at)
		VALUES (?, ?, '2026-01-01', 12, '{}', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`, id, id)
	return err
}

func TestUnitOfWork_Commit(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	uow := NewSQLiteUnitOfWork(database)
	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		return insertVenture(ctx, tx, "v1")
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM ventures`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestUnitOfWork_RollbackOnError(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	boom := errors.New("boom")
	uow := NewSQLiteUnitOfWork(database)
	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		if err := insertVenture(ctx, tx, "v1"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM ventures`).Scan(&n))
	assert.Zero(t, n, "failed transactions leave no rows behind")
}

func TestUnitOfWork_RollbackOnPanic(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	uow := NewSQLiteUnitOfWork(database)
	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
			if err := insertVenture(ctx, tx, "v1"); err != nil {
				return err
			}
			panic("boom")
		})
	})

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM ventures`).Scan(&n))
	assert.Zero(t, n)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturecast/internal/domain"
	"venturecast/internal/testutil"
)

func storedVenture(t *testing.T) *domain.StoredVenture {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.StoredVenture{
		ID:        uuid.NewString(),
		Venture:   testutil.NewTestVenture(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestVentureRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteVentureRepo(database)
	ctx := context.Background()

	v := storedVenture(t)
	require.NoError(t, repo.Create(ctx, v))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)
	assert.Equal(t, v.Venture.Meta, got.Venture.Meta)
	assert.Equal(t, v.Venture.Tasks, got.Venture.Tasks)
	assert.Equal(t, v.Venture.RevenueStreams, got.Venture.RevenueStreams)
	assert.True(t, v.CreatedAt.Equal(got.CreatedAt))

	byName, err := repo.GetByName(ctx, v.Venture.Meta.Name)
	require.NoError(t, err)
	assert.Equal(t, v.ID, byName.ID)
}

func TestVentureRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteVentureRepo(database)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVentureRepo_DuplicateNameRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteVentureRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedVenture(t)))
	err := repo.Create(ctx, storedVenture(t))
	assert.Error(t, err, "venture names are unique")
}

func TestVentureRepo_List(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteVentureRepo(database)
	ctx := context.Background()

	first := storedVenture(t)
	require.NoError(t, repo.Create(ctx, first))

	second := storedVenture(t)
	second.Venture.Meta.Name = "second venture"
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID, "ordered by creation time")
	assert.Equal(t, second.ID, list[1].ID)
}

func TestVentureRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteVentureRepo(database)
	ctx := context.Background()

	v := storedVenture(t)
	require.NoError(t, repo.Create(ctx, v))

	v.Venture.Meta.HorizonMonths = 120
	require.NoError(t, repo.Update(ctx, v))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, got.Venture.Meta.HorizonMonths)

	missing := storedVenture(t)
	missing.Venture.Meta.Name = "ghost"
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
}

func TestVentureRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteVentureRepo(database)
	ctx := context.Background()

	v := storedVenture(t)
	require.NoError(t, repo.Create(ctx, v))
	require.NoError(t, repo.Delete(ctx, v.ID))

	_, err := repo.GetByID(ctx, v.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, v.ID), ErrNotFound)
}

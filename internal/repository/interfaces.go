package repository

import (
	"context"

	"venturecast/internal/domain"
)

type VentureRepo interface {
	Create(ctx context.Context, v *domain.StoredVenture) error
	GetByID(ctx context.Context, id string) (*domain.StoredVenture, error)
	GetByName(ctx context.Context, name string) (*domain.StoredVenture, error)
	List(ctx context.Context) ([]*domain.StoredVenture, error)
	Update(ctx context.Context, v *domain.StoredVenture) error
	Delete(ctx context.Context, id string) error
}

type RunRepo interface {
	Create(ctx context.Context, r *domain.SavedRun) error
	GetByID(ctx context.Context, id string) (*domain.SavedRun, error)
	ListByVenture(ctx context.Context, ventureID string) ([]*domain.SavedRun, error)
	Delete(ctx context.Context, id string) error
}

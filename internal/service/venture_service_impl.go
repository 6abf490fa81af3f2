package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"venturecast/internal/domain"
	"venturecast/internal/repository"
)

type ventureService struct {
	ventures repository.VentureRepo
}

func NewVentureService(ventures repository.VentureRepo) VentureService {
	return &ventureService{ventures: ventures}
}

func (s *ventureService) Create(ctx context.Context, v *domain.Venture) (*domain.StoredVenture, error) {
	now := time.Now().UTC()
	stored := &domain.StoredVenture{
		ID:        uuid.New().String(),
		Venture:   v,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.ventures.Create(ctx, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *ventureService) Get(ctx context.Context, ref string) (*domain.StoredVenture, error) {
	return resolveVenture(ctx, s.ventures, ref)
}

func (s *ventureService) List(ctx context.Context) ([]*domain.StoredVenture, error) {
	return s.ventures.List(ctx)
}

func (s *ventureService) Update(ctx context.Context, stored *domain.StoredVenture) error {
	stored.UpdatedAt = time.Now().UTC()
	return s.ventures.Update(ctx, stored)
}

func (s *ventureService) Delete(ctx context.Context, ref string) error {
	stored, err := resolveVenture(ctx, s.ventures, ref)
	if err != nil {
		return err
	}
	return s.ventures.Delete(ctx, stored.ID)
}

// resolveVenture looks up a venture by id first, then by name.
func resolveVenture(ctx context.Context, repo repository.VentureRepo, ref string) (*domain.StoredVenture, error) {
	stored, err := repo.GetByID(ctx, ref)
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return repo.GetByName(ctx, ref)
}

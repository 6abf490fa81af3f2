package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"venturecast/internal/db"
	"venturecast/internal/domain"
	"venturecast/internal/importer"
	"venturecast/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService creates an ImportService. The import replaces a stored
// venture of the same name atomically, so it works through a UnitOfWork.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, path string) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": path}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-venture",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	v, warns, err := importer.ImportVenture(path)
	if err != nil {
		return nil, err
	}
	fields["venture"] = v.Meta.Name
	fields["warnings"] = len(warns)

	result = &ImportResult{Warnings: warns}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteVentureRepo(tx)
		now := time.Now().UTC()

		existing, err := repo.GetByName(ctx, v.Meta.Name)
		switch {
		case err == nil:
			existing.Venture = v
			existing.UpdatedAt = now
			if err := repo.Update(ctx, existing); err != nil {
				return err
			}
			result.Venture = existing
			result.Replaced = true
			return nil
		case errors.Is(err, repository.ErrNotFound):
			stored := &domain.StoredVenture{
				ID:        uuid.New().String(),
				Venture:   v,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := repo.Create(ctx, stored); err != nil {
				return err
			}
			result.Venture = stored
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

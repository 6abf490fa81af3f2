package service

import (
	"context"

	"venturecast/internal/domain"
	"venturecast/internal/schedule"
	"venturecast/internal/simulate"
	"venturecast/internal/tuning"
)

// VentureService manages stored venture definitions. Lookup methods accept a
// venture id or its unique name.
type VentureService interface {
	Create(ctx context.Context, v *domain.Venture) (*domain.StoredVenture, error)
	Get(ctx context.Context, ref string) (*domain.StoredVenture, error)
	List(ctx context.Context) ([]*domain.StoredVenture, error)
	Update(ctx context.Context, stored *domain.StoredVenture) error
	Delete(ctx context.Context, ref string) error
}

// ImportResult holds the outcome of a venture definition import.
type ImportResult struct {
	Venture  *domain.StoredVenture
	Warnings []domain.Warning
	Replaced bool
}

type ImportService interface {
	// ImportFile loads a definition file and stores it, replacing any stored
	// venture with the same name.
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
}

// SimulationRun pairs the monthly series with its derived metrics.
type SimulationRun struct {
	Result  *simulate.Result
	Metrics simulate.Metrics

	// SavedRunID is set when the run was persisted.
	SavedRunID string
}

// ProjectionService derives schedules and financial projections from a
// stored venture.
type ProjectionService interface {
	Schedule(ctx context.Context, ref string) (*schedule.Result, error)
	Simulate(ctx context.Context, ref string, ctl domain.Controls, label string) (*SimulationRun, error)
	ListRuns(ctx context.Context, ref string) ([]*domain.SavedRun, error)
}

// AnalysisService runs sensitivity analysis and goal-directed optimization.
type AnalysisService interface {
	Sensitivity(ctx context.Context, ref string, ctl domain.Controls, opts tuning.AnalyzeOptions) ([]tuning.SensitivityResult, error)
	Optimize(ctx context.Context, ref string, ctl domain.Controls, goal tuning.Goal, groups tuning.ParameterGroups, maxAdjustmentPct float64) (*tuning.OptimizationResult, error)
}

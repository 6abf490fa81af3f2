package service

import (
	"context"
	"time"

	"venturecast/internal/domain"
	"venturecast/internal/repository"
	"venturecast/internal/tuning"
)

type analysisService struct {
	ventures repository.VentureRepo
	observer UseCaseObserver
}

// NewAnalysisService creates an AnalysisService over the venture repo.
func NewAnalysisService(ventures repository.VentureRepo, observers ...UseCaseObserver) AnalysisService {
	return &analysisService{ventures: ventures, observer: useCaseObserverOrNoop(observers)}
}

func (s *analysisService) Sensitivity(ctx context.Context, ref string, ctl domain.Controls, opts tuning.AnalyzeOptions) (results []tuning.SensitivityResult, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "sensitivity",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"venture": ref, "perturbation_pct": opts.PerturbationPct},
		})
	}()

	stored, err := resolveVenture(ctx, s.ventures, ref)
	if err != nil {
		return nil, err
	}
	return tuning.Analyze(ctx, stored.Venture, ctl, opts)
}

func (s *analysisService) Optimize(ctx context.Context, ref string, ctl domain.Controls, goal tuning.Goal, groups tuning.ParameterGroups, maxAdjustmentPct float64) (result *tuning.OptimizationResult, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "optimize",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"venture": ref, "goal": string(goal), "max_adjustment_pct": maxAdjustmentPct},
		})
	}()

	stored, err := resolveVenture(ctx, s.ventures, ref)
	if err != nil {
		return nil, err
	}
	return tuning.Optimize(ctx, stored.Venture, ctl, goal, groups, maxAdjustmentPct)
}

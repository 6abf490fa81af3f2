package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"venturecast/internal/domain"
	"venturecast/internal/repository"
	"venturecast/internal/schedule"
	"venturecast/internal/simulate"
)

type projectionService struct {
	ventures repository.VentureRepo
	runs     repository.RunRepo
	observer UseCaseObserver
}

// NewProjectionService creates a ProjectionService over the given repos.
func NewProjectionService(ventures repository.VentureRepo, runs repository.RunRepo, observers ...UseCaseObserver) ProjectionService {
	return &projectionService{
		ventures: ventures,
		runs:     runs,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectionService) Schedule(ctx context.Context, ref string) (res *schedule.Result, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "schedule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"venture": ref},
		})
	}()

	stored, err := resolveVenture(ctx, s.ventures, ref)
	if err != nil {
		return nil, err
	}
	v := stored.Venture
	return schedule.Resolve(v.Tasks, v.Meta.Start, v.Meta.HorizonMonths)
}

// Simulate runs the financial projection. A non-empty label persists the run
// for later comparison.
func (s *projectionService) Simulate(ctx context.Context, ref string, ctl domain.Controls, label string) (run *SimulationRun, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"venture": ref, "scenario": string(ctl.GlobalScenario())}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "simulate",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	stored, err := resolveVenture(ctx, s.ventures, ref)
	if err != nil {
		return nil, err
	}

	result, err := simulate.Run(stored.Venture, ctl)
	if err != nil {
		return nil, err
	}
	run = &SimulationRun{
		Result:  result,
		Metrics: simulate.ComputeMetrics(result.Months),
	}

	if label != "" {
		saved := &domain.SavedRun{
			ID:              uuid.New().String(),
			VentureID:       stored.ID,
			Kind:            domain.RunSimulation,
			Label:           label,
			Scenario:        ctl.GlobalScenario(),
			Controls:        ctl,
			ProfitableMonth: run.Metrics.ProfitableMonth,
			InvestedCapital: run.Metrics.InvestedCapital,
			ROI5Year:        run.Metrics.ROI5Year,
			FinalCash:       run.Metrics.FinalCash,
			Months:          result.Months,
			Warnings:        result.Warnings,
			CreatedAt:       time.Now().UTC(),
		}
		if err = s.runs.Create(ctx, saved); err != nil {
			return nil, err
		}
		run.SavedRunID = saved.ID
		fields["saved_run"] = saved.ID
	}
	return run, nil
}

func (s *projectionService) ListRuns(ctx context.Context, ref string) ([]*domain.SavedRun, error) {
	stored, err := resolveVenture(ctx, s.ventures, ref)
	if err != nil {
		return nil, err
	}
	return s.runs.ListByVenture(ctx, stored.ID)
}

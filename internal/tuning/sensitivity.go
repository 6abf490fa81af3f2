package tuning

import (
	"context"
	"runtime"
	"sync"

	"venturecast/internal/domain"
	"venturecast/internal/simulate"
)

// SensitivityResult measures one parameter's leverage: the shift in the
// profitability month and in 5-year ROI when the parameter is perturbed.
// Results form an unordered collection keyed by (entity, parameter); callers
// rank and filter.
type SensitivityResult struct {
	EntityName string
	Parameter  string
	Group      ParameterGroup

	// ProfitabilityImpact is the change, in months, of the first
	// cumulative-profit-positive month relative to the baseline.
	ProfitabilityImpact int

	// ROIImpact is the change in 5-year ROI, in percentage points.
	ROIImpact float64
}

type AnalyzeOptions struct {
	// PerturbationPct is the canonical single-direction perturbation applied
	// to each parameter. Zero is honored as-is (and yields zero impacts).
	PerturbationPct float64

	// Workers bounds the fan-out of independent simulator runs; <= 0 means
	// one per CPU.
	Workers int
}

func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{PerturbationPct: 10}
}

// Analyze perturbs every tunable parameter and re-runs the full simulator to
// measure impact. Runs are independent, so they fan out across workers;
// correctness does not depend on completion order.
func Analyze(ctx context.Context, v *domain.Venture, ctl domain.Controls, opts AnalyzeOptions) ([]SensitivityResult, error) {
	base, err := simulate.Run(v, ctl)
	if err != nil {
		return nil, err
	}
	baseMetrics := simulate.ComputeMetrics(base.Months)
	window := v.Meta.HorizonMonths
	if window > 60 {
		window = 60
	}

	params := Parameters(v)
	results := make([]SensitivityResult, len(params))
	errs := make([]error, len(params))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = analyzeOne(v, ctl, params[i], opts.PerturbationPct, baseMetrics, window)
			}
		}()
	}

	var cancelled error
feed:
	for i := range params {
		if cancelled = ctx.Err(); cancelled != nil {
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func analyzeOne(
	v *domain.Venture,
	ctl domain.Controls,
	p Parameter,
	perturbationPct float64,
	base simulate.Metrics,
	window int,
) (SensitivityResult, error) {
	adjusted := p.Adjusted(v, 1+perturbationPct/100)
	run, err := simulate.Run(adjusted, ctl)
	if err != nil {
		return SensitivityResult{}, err
	}
	m := simulate.ComputeMetrics(run.Months)

	return SensitivityResult{
		EntityName: p.EntityName,
		Parameter:  p.Name,
		Group:      p.Group,
		ProfitabilityImpact: simulate.MonthOrWindow(m.ProfitableMonth, window) -
			simulate.MonthOrWindow(base.ProfitableMonth, window),
		ROIImpact: (m.ROI5Year - base.ROI5Year) * 100,
	}, nil
}

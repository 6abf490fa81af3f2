package tuning

import (
	"context"
	"fmt"

	"venturecast/internal/domain"
	"venturecast/internal/simulate"
)

type Goal string

const (
	GoalMaximizeROI               Goal = "maximize_roi"
	GoalMinimizeProfitabilityTime Goal = "minimize_profitability_time"
	GoalBalanced                  Goal = "balanced"
)

var validGoals = map[string]bool{
	"maximize_roi": true, "minimize_profitability_time": true, "balanced": true,
}

// ParseGoal converts a user-supplied string into a Goal.
func ParseGoal(s string) (Goal, error) {
	if !validGoals[s] {
		return "", fmt.Errorf("invalid goal %q (expected maximize_roi, minimize_profitability_time or balanced)", s)
	}
	return Goal(s), nil
}

// ParameterGroups gates which parameter categories participate in the search.
type ParameterGroups struct {
	StreamPrices      bool
	StreamCAC         bool
	StreamAcquisition bool
	StreamChurn       bool
	FixedCosts        bool
}

// AllParameterGroups enables every category.
func AllParameterGroups() ParameterGroups {
	return ParameterGroups{
		StreamPrices:      true,
		StreamCAC:         true,
		StreamAcquisition: true,
		StreamChurn:       true,
		FixedCosts:        true,
	}
}

func (g ParameterGroups) enabled(group ParameterGroup) bool {
	switch group {
	case GroupStreamPrice:
		return g.StreamPrices
	case GroupStreamCAC:
		return g.StreamCAC
	case GroupStreamAcquisition:
		return g.StreamAcquisition
	case GroupStreamChurn:
		return g.StreamChurn
	case GroupFixedCost:
		return g.FixedCosts
	default:
		return false
	}
}

// GoalMetrics is the objective-facing slice of a run's metrics.
type GoalMetrics struct {
	ProfitableMonth   *int
	ROIBreakevenMonth *int
	ROI5Year          float64
}

// Recommendation is one proposed parameter adjustment.
type Recommendation struct {
	EntityName     string
	Parameter      string
	Group          ParameterGroup
	CurrentValue   float64
	SuggestedValue float64
	// ChangePercent is always within ±maxAdjustmentPercent.
	ChangePercent float64
}

// Improvements summarizes optimized vs current metrics.
type Improvements struct {
	// ProfitableMonthDelta is negative when profitability arrives earlier.
	ProfitableMonthDelta int
	// ROI5YearDelta is in percentage points.
	ROI5YearDelta float64
}

type OptimizationResult struct {
	Goal             Goal
	CurrentMetrics   GoalMetrics
	OptimizedMetrics GoalMetrics
	Improvements     Improvements
	Recommendations  []Recommendation

	// Iterations counts simulator invocations spent on the search.
	Iterations int
	// Converged is false when the search was cancelled before visiting
	// every eligible parameter; the result is the best found so far.
	Converged bool
}

// candidateSteps are the adjustment fractions of maxAdjustmentPercent tried
// per parameter: a greedy, explainable grid, not a global optimum search.
var candidateSteps = []float64{-1, -0.75, -0.5, -0.25, 0.25, 0.5, 0.75, 1}

// Optimize searches, per enabled parameter, within ±maxAdjustmentPercent of
// the baseline value for the independent adjustment that most improves the
// objective. Cross-parameter interactions are not solved; each parameter's
// best adjustment is reported and the joint application is re-simulated for
// the optimized metrics. A cancelled context ends the search early and
// returns the best result found so far.
func Optimize(
	ctx context.Context,
	v *domain.Venture,
	ctl domain.Controls,
	goal Goal,
	groups ParameterGroups,
	maxAdjustmentPercent float64,
) (*OptimizationResult, error) {
	if !validGoals[string(goal)] {
		return nil, fmt.Errorf("invalid goal %q", goal)
	}
	if maxAdjustmentPercent <= 0 {
		return nil, fmt.Errorf("max adjustment percent must be positive, got %v", maxAdjustmentPercent)
	}

	base, err := simulate.Run(v, ctl)
	if err != nil {
		return nil, err
	}
	baseMetrics := simulate.ComputeMetrics(base.Months)
	window := v.Meta.HorizonMonths
	if window > 60 {
		window = 60
	}

	res := &OptimizationResult{
		Goal:           goal,
		CurrentMetrics: goalMetrics(baseMetrics),
		Converged:      true,
	}
	res.Iterations++ // baseline run

	baseObjective := objective(baseMetrics, goal, window)

	for _, p := range Parameters(v) {
		if !groups.enabled(p.Group) {
			continue
		}
		if ctx.Err() != nil {
			res.Converged = false
			break
		}

		bestStep := 0.0
		bestObjective := baseObjective
		for _, frac := range candidateSteps {
			step := frac * maxAdjustmentPercent
			adjusted := p.Adjusted(v, 1+step/100)
			run, err := simulate.Run(adjusted, ctl)
			if err != nil {
				return nil, err
			}
			res.Iterations++
			obj := objective(simulate.ComputeMetrics(run.Months), goal, window)
			if obj > bestObjective+1e-12 {
				bestObjective = obj
				bestStep = step
			}
		}

		if bestStep != 0 {
			res.Recommendations = append(res.Recommendations, Recommendation{
				EntityName:     p.EntityName,
				Parameter:      p.Name,
				Group:          p.Group,
				CurrentValue:   p.Baseline,
				SuggestedValue: p.Baseline * (1 + bestStep/100),
				ChangePercent:  bestStep,
			})
		}
	}

	optimized := applyRecommendations(v, res.Recommendations)
	run, err := simulate.Run(optimized, ctl)
	if err != nil {
		return nil, err
	}
	res.Iterations++
	optMetrics := simulate.ComputeMetrics(run.Months)
	res.OptimizedMetrics = goalMetrics(optMetrics)
	res.Improvements = Improvements{
		ProfitableMonthDelta: simulate.MonthOrWindow(optMetrics.ProfitableMonth, window) -
			simulate.MonthOrWindow(baseMetrics.ProfitableMonth, window),
		ROI5YearDelta: (optMetrics.ROI5Year - baseMetrics.ROI5Year) * 100,
	}
	return res, nil
}

// objective maps metrics to a maximized scalar. Balanced trades one year of
// profitability delay against one unit (100 points) of ROI.
func objective(m simulate.Metrics, goal Goal, window int) float64 {
	profitMonth := float64(simulate.MonthOrWindow(m.ProfitableMonth, window))
	switch goal {
	case GoalMaximizeROI:
		return m.ROI5Year
	case GoalMinimizeProfitabilityTime:
		return -profitMonth
	default: // balanced
		return m.ROI5Year - profitMonth/12
	}
}

func goalMetrics(m simulate.Metrics) GoalMetrics {
	return GoalMetrics{
		ProfitableMonth:   m.ProfitableMonth,
		ROIBreakevenMonth: m.ROIBreakevenMonth,
		ROI5Year:          m.ROI5Year,
	}
}

// applyRecommendations scales each recommended parameter on a single clone.
func applyRecommendations(v *domain.Venture, recs []Recommendation) *domain.Venture {
	clone := v.Clone()
	params := Parameters(clone)
	for _, rec := range recs {
		for _, p := range params {
			if p.EntityName == rec.EntityName && p.Name == rec.Parameter {
				p.apply(clone, 1+rec.ChangePercent/100)
				break
			}
		}
	}
	return clone
}

package tuning

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturecast/internal/domain"
	"venturecast/internal/simulate"
	"venturecast/internal/testutil"
)

func TestOptimize_RecommendationsRespectAdjustmentBound(t *testing.T) {
	v := testutil.NewTestVenture()

	for _, maxPct := range []float64{5, 15, 40} {
		res, err := Optimize(context.Background(), v, domain.DefaultControls(),
			GoalMaximizeROI, AllParameterGroups(), maxPct)
		require.NoError(t, err)
		require.NotEmpty(t, res.Recommendations)

		for _, rec := range res.Recommendations {
			assert.LessOrEqual(t, math.Abs(rec.ChangePercent), maxPct,
				"%s/%s at maxPct=%v", rec.EntityName, rec.Parameter, maxPct)
		}
	}
}

func TestOptimize_MaximizeROIImproves(t *testing.T) {
	v := testutil.NewTestVenture()

	res, err := Optimize(context.Background(), v, domain.DefaultControls(),
		GoalMaximizeROI, AllParameterGroups(), 20)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.GreaterOrEqual(t, res.OptimizedMetrics.ROI5Year, res.CurrentMetrics.ROI5Year)
	assert.GreaterOrEqual(t, res.Improvements.ROI5YearDelta, 0.0)
}

func TestOptimize_MinimizeProfitabilityTimeImproves(t *testing.T) {
	v := testutil.NewTestVenture()

	res, err := Optimize(context.Background(), v, domain.DefaultControls(),
		GoalMinimizeProfitabilityTime, AllParameterGroups(), 20)
	require.NoError(t, err)

	base := simulate.MonthOrWindow(res.CurrentMetrics.ProfitableMonth, 60)
	opt := simulate.MonthOrWindow(res.OptimizedMetrics.ProfitableMonth, 60)
	assert.LessOrEqual(t, opt, base)
	assert.LessOrEqual(t, res.Improvements.ProfitableMonthDelta, 0)
}

func TestOptimize_DisabledGroupsAreExcluded(t *testing.T) {
	v := testutil.NewTestVenture()

	res, err := Optimize(context.Background(), v, domain.DefaultControls(),
		GoalMaximizeROI, ParameterGroups{FixedCosts: true}, 20)
	require.NoError(t, err)

	for _, rec := range res.Recommendations {
		assert.Equal(t, GroupFixedCost, rec.Group)
	}
}

func TestOptimize_SuggestedValueMatchesChangePercent(t *testing.T) {
	v := testutil.NewTestVenture()

	res, err := Optimize(context.Background(), v, domain.DefaultControls(),
		GoalMaximizeROI, AllParameterGroups(), 25)
	require.NoError(t, err)
	require.NotEmpty(t, res.Recommendations)

	for _, rec := range res.Recommendations {
		assert.InDelta(t, rec.CurrentValue*(1+rec.ChangePercent/100), rec.SuggestedValue, 1e-9)
	}
}

func TestOptimize_CancelledContextReturnsBestSoFar(t *testing.T) {
	v := testutil.NewTestVenture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Optimize(ctx, v, domain.DefaultControls(),
		GoalMaximizeROI, AllParameterGroups(), 20)
	require.NoError(t, err, "cancellation returns the best result found so far")

	assert.False(t, res.Converged)
	assert.Empty(t, res.Recommendations)
	assert.Equal(t, res.CurrentMetrics, res.OptimizedMetrics)
}

func TestOptimize_InvalidInputs(t *testing.T) {
	v := testutil.NewTestVenture()

	_, err := Optimize(context.Background(), v, domain.DefaultControls(),
		Goal("best_everything"), AllParameterGroups(), 20)
	assert.Error(t, err)

	_, err = Optimize(context.Background(), v, domain.DefaultControls(),
		GoalMaximizeROI, AllParameterGroups(), 0)
	assert.Error(t, err)
}

func TestParseGoal(t *testing.T) {
	g, err := ParseGoal("balanced")
	require.NoError(t, err)
	assert.Equal(t, GoalBalanced, g)

	_, err = ParseGoal("fastest")
	assert.Error(t, err)
}

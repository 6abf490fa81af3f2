package schedule

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturecast/internal/domain"
)

// randomDAG builds a task list where each task may depend only on
// earlier-indexed tasks, so the graph is acyclic by construction.
func randomDAG(rng *rand.Rand, n int) []domain.Task {
	tasks := make([]domain.Task, n)
	for i := range tasks {
		tasks[i] = domain.Task{ID: fmt.Sprintf("t%d", i)}
		if rng.Intn(3) > 0 {
			d := domain.Duration{Value: rng.Intn(12) + 1, Unit: domain.UnitMonths}
			tasks[i].Duration = &d
		}
		for j := 0; j < i; j++ {
			if rng.Intn(4) != 0 {
				continue
			}
			anchor := domain.AnchorEnd
			if rng.Intn(2) == 0 {
				anchor = domain.AnchorStart
			}
			tasks[i].DependsOn = append(tasks[i].DependsOn, domain.DependencyRef{
				TaskID:       fmt.Sprintf("t%d", j),
				Anchor:       anchor,
				OffsetMonths: float64(rng.Intn(7) - 3),
				Raw:          fmt.Sprintf("t%d", j),
			})
		}
	}
	return tasks
}

// TestResolve_Invariants_DependencyBoundsHold property-tests the scheduling
// invariant: every computed start satisfies all of its dependency lower
// bounds, and resolution is idempotent.
func TestResolve_Invariants_DependencyBoundsHold(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	const horizon = 60

	for trial := 0; trial < 100; trial++ {
		tasks := randomDAG(rng, rng.Intn(10)+2)

		res, err := Resolve(tasks, start, horizon)
		require.NoError(t, err, "trial %d", trial)
		require.Len(t, res.Tasks, len(tasks))

		byID := make(map[string]ComputedTask, len(res.Tasks))
		for _, ct := range res.Tasks {
			byID[ct.Task.ID] = ct
		}

		for _, ct := range res.Tasks {
			assert.GreaterOrEqual(t, ct.StartMonths, 0.0,
				"trial %d: task %s starts before the project", trial, ct.Task.ID)
			for _, ref := range ct.Task.DependsOn {
				dep := byID[ref.TaskID]
				bound := dep.StartMonths
				if ref.Anchor == domain.AnchorEnd {
					bound = float64(horizon)
					if dep.EndMonths != nil {
						bound = *dep.EndMonths
					}
				}
				bound += ref.OffsetMonths
				assert.GreaterOrEqual(t, ct.StartMonths, bound-1e-9,
					"trial %d: task %s violates bound from %s", trial, ct.Task.ID, ref.Raw)
			}
		}

		again, err := Resolve(tasks, start, horizon)
		require.NoError(t, err, "trial %d", trial)
		assert.Equal(t, res.Tasks, again.Tasks, "trial %d: resolution must be idempotent", trial)
	}
}

// Package schedule resolves task definitions with dependency references into
// concrete start/end offsets from the project start.
package schedule

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"venturecast/internal/domain"
)

// ComputedTask is a task with resolved schedule offsets. Offsets are
// fractional months from the project start; EndMonths is nil for ongoing
// tasks (no duration).
type ComputedTask struct {
	Task        domain.Task
	StartMonths float64
	EndMonths   *float64
	Start       time.Time
	End         *time.Time
}

// Result carries the resolved schedule plus non-fatal warnings (unresolvable
// references impose no lower bound but are always reported).
type Result struct {
	Tasks    []ComputedTask
	Warnings []domain.Warning
}

// TaskByID returns the computed task with the given id.
func (r *Result) TaskByID(id string) (ComputedTask, bool) {
	for _, t := range r.Tasks {
		if t.Task.ID == id {
			return t, true
		}
	}
	return ComputedTask{}, false
}

// CycleError is fatal: a direct or transitive dependency cycle makes the
// schedule unresolvable.
type CycleError struct {
	TaskIDs []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic task dependency involving %s", strings.Join(e.TaskIDs, " -> "))
}

// Resolve computes a schedule for the given tasks. Every task's computed
// start satisfies all of its dependency lower bounds; a task with no
// dependencies starts at its manual start (default: project start). A task
// gated by multiple dependencies starts at the latest bound (max, not sum).
// Resolution is deterministic and idempotent.
//
// horizonMonths bounds the "end" anchor of ongoing tasks: a dependency on
// the end of an ongoing task treats it as extending to the horizon.
func Resolve(tasks []domain.Task, projectStart time.Time, horizonMonths int) (*Result, error) {
	order, err := topoOrder(tasks)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	res := &Result{}
	starts := make(map[string]float64, len(tasks))
	ends := make(map[string]*float64, len(tasks))

	for _, id := range order {
		t := byID[id]
		start := resolveStart(t, projectStart, horizonMonths, starts, ends, res)
		starts[id] = start

		var end *float64
		if t.Duration != nil {
			e := start + t.Duration.Months()
			end = &e
		}
		ends[id] = end
	}

	// Emit in input order, not topological order.
	for _, t := range tasks {
		ct := ComputedTask{
			Task:        t,
			StartMonths: starts[t.ID],
			Start:       dateAtMonths(projectStart, starts[t.ID]),
		}
		if e := ends[t.ID]; e != nil {
			ct.EndMonths = e
			endDate := dateAtMonths(projectStart, *e)
			ct.End = &endDate
		}
		res.Tasks = append(res.Tasks, ct)
	}
	return res, nil
}

func resolveStart(
	t domain.Task,
	projectStart time.Time,
	horizonMonths int,
	starts map[string]float64,
	ends map[string]*float64,
	res *Result,
) float64 {
	if len(t.DependsOn) == 0 {
		if t.ManualStart != nil {
			return monthsBetween(projectStart, *t.ManualStart)
		}
		return 0
	}

	// Manual start is only meaningful without dependencies.
	start := 0.0
	for _, ref := range t.DependsOn {
		refStart, ok := starts[ref.TaskID]
		if !ok {
			res.Warnings = append(res.Warnings, domain.Warning{
				Entity:  t.ID,
				Field:   "depends_on",
				Message: fmt.Sprintf("reference %q points to unknown task %q; no constraint applied", ref.Raw, ref.TaskID),
			})
			continue
		}

		anchor := refStart
		if ref.Anchor == domain.AnchorEnd {
			if e := ends[ref.TaskID]; e != nil {
				anchor = *e
			} else {
				// Ongoing tasks extend to the horizon for layout purposes.
				anchor = float64(horizonMonths)
			}
		}
		if bound := anchor + ref.OffsetMonths; bound > start {
			start = bound
		}
	}
	return start
}

// topoOrder orders task ids so every dependency precedes its dependents,
// failing with a CycleError on a direct or transitive cycle. References to
// unknown tasks are ignored here; Resolve reports them.
func topoOrder(tasks []domain.Task) ([]string, error) {
	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}
	deps := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		for _, ref := range t.DependsOn {
			if known[ref.TaskID] {
				deps[t.ID] = append(deps[t.ID], ref.TaskID)
			}
		}
	}

	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // fully processed
	)
	color := make(map[string]int, len(tasks))
	var order []string
	var cycle *CycleError

	var visit func(id string, path []string) bool
	visit = func(id string, path []string) bool {
		color[id] = gray
		path = append(path, id)
		// Deterministic traversal regardless of map iteration.
		next := append([]string(nil), deps[id]...)
		sort.Strings(next)
		for _, dep := range next {
			switch color[dep] {
			case gray:
				cycle = &CycleError{TaskIDs: append(path, dep)}
				return true
			case white:
				if visit(dep, path) {
					return true
				}
			}
		}
		color[id] = black
		order = append(order, id)
		return false
	}

	for _, t := range tasks {
		if color[t.ID] == white {
			if visit(t.ID, nil) {
				return nil, cycle
			}
		}
	}
	return order, nil
}

// dateAtMonths converts a fractional month offset to an absolute date: whole
// months are calendar months, the fractional remainder counts as 30-day
// fractions.
func dateAtMonths(start time.Time, months float64) time.Time {
	whole := int(math.Floor(months))
	frac := months - float64(whole)
	d := start.AddDate(0, whole, 0)
	if frac > 0 {
		d = d.AddDate(0, 0, int(math.Round(frac*30)))
	}
	return d
}

// monthsBetween is the inverse of dateAtMonths for dates on or after start:
// whole calendar months plus leftover days as 30-day fractions. Dates before
// start yield negative offsets.
func monthsBetween(start, t time.Time) float64 {
	if t.Before(start) {
		return -monthsBetween(t, start)
	}
	months := 0
	for !start.AddDate(0, months+1, 0).After(t) {
		months++
	}
	days := t.Sub(start.AddDate(0, months, 0)).Hours() / 24
	return float64(months) + days/30
}

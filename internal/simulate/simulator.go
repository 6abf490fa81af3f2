// Package simulate turns a venture definition into a month-by-month
// financial series. Runs are pure, deterministic functions of their inputs:
// the same venture and controls always produce bit-identical snapshots.
package simulate

import (
	"fmt"
	"math"

	"venturecast/internal/domain"
	"venturecast/internal/schedule"
)

// Result is a full simulation run: one snapshot per month plus the resolved
// task schedule and any recoverable warnings.
type Result struct {
	Months   []domain.MonthlySnapshot
	Schedule *schedule.Result
	Warnings []domain.Warning
}

// Run simulates the venture over its horizon under the given controls.
// Validation problems (misordered distributions, unknown event references)
// are clamped or degraded and reported as warnings; a dependency cycle in the
// task list is fatal and surfaces as a schedule.CycleError.
func Run(v *domain.Venture, ctl domain.Controls) (*Result, error) {
	horizon := v.Meta.HorizonMonths
	if horizon <= 0 {
		return nil, fmt.Errorf("venture horizon must be positive, got %d", horizon)
	}

	sched, err := schedule.Resolve(v.Tasks, v.Meta.Start, horizon)
	if err != nil {
		return nil, err
	}

	res := &Result{Schedule: sched}
	res.Warnings = append(res.Warnings, sched.Warnings...)

	streams := buildStreamPlans(v, ctl, res)
	tasks := buildTaskPlans(v, sched, ctl, horizon, res)
	fixed := buildFixedPlans(v, ctl, res)

	units := make(map[string]float64, len(streams))

	cumProfit := 0.0
	res.Months = make([]domain.MonthlySnapshot, 0, horizon)
	for m := 0; m < horizon; m++ {
		snap := domain.MonthlySnapshot{
			Month:         m,
			UnitsByStream: make(map[string]float64, len(streams)),
		}

		acquisitionSpend := 0.0
		for i := range streams {
			sp := &streams[i]
			if !sp.active || m < sp.activeFrom {
				continue
			}

			prev := sp.initialUnits
			if m > sp.activeFrom {
				prev = units[sp.id]
			}
			newUnits := sp.acqRate
			u := prev + newUnits - sp.churn*prev + sp.expansion*prev
			if u < 0 {
				u = 0
			}
			units[sp.id] = u
			snap.UnitsByStream[sp.id] = u

			revenue := sp.recognizedRevenue(m, u)
			snap.Revenue += revenue
			snap.DeliveryCosts += sp.deliveryCost(revenue, u)

			spend := newUnits * (sp.cac + sp.onboarding)
			snap.AcquisitionCosts += spend
			acquisitionSpend += spend
			snap.NewUnits += newUnits
		}

		for _, tp := range tasks {
			if tp.oneOffMonth != nil && *tp.oneOffMonth == m {
				snap.TaskCosts += tp.oneOff
			}
			if tp.monthly > 0 && m >= tp.activeFrom && m <= tp.activeTo {
				snap.TaskCosts += tp.monthly
			}
		}

		for _, fp := range fixed {
			if fp.active && m >= fp.activeFrom {
				snap.FixedCosts += fp.monthly
			}
		}

		segRevenue, segAcq, segNew := legacySegmentMonth(v.Segments, m)
		snap.Revenue += segRevenue
		snap.AcquisitionCosts += segAcq
		acquisitionSpend += segAcq
		snap.NewUnits += segNew

		for _, o := range v.Opex {
			if m >= o.StartMonth {
				snap.OpexCosts += o.MonthlyAmount
			}
		}

		snap.Costs = snap.DeliveryCosts + snap.AcquisitionCosts + snap.TaskCosts + snap.FixedCosts + snap.OpexCosts
		snap.Profit = snap.Revenue - snap.Costs
		cumProfit += snap.Profit
		snap.CumulativeProfit = cumProfit
		snap.Cash = v.Meta.InitialReserve + cumProfit
		if snap.NewUnits > 0 {
			snap.BlendedCAC = acquisitionSpend / snap.NewUnits
		}

		res.Months = append(res.Months, snap)
	}

	return res, nil
}

// streamPlan holds a revenue stream's scalars, evaluated once per run since
// scenario and multiplier are fixed for the whole series.
type streamPlan struct {
	id         string
	active     bool
	activeFrom int

	price        float64
	annual       bool
	perUnit      bool
	marginPct    float64
	costPerUnit  float64
	acqRate      float64
	churn        float64
	expansion    float64
	cac          float64
	onboarding   float64
	initialUnits float64
}

// recognizedRevenue applies the billing policy: monthly billing recognizes
// units x price every month; annual billing recognizes the full contract
// amount (12 x price) in each anniversary month of activation and nothing in
// between.
func (sp *streamPlan) recognizedRevenue(m int, units float64) float64 {
	if sp.annual {
		if (m-sp.activeFrom)%12 == 0 {
			return units * sp.price * 12
		}
		return 0
	}
	return units * sp.price
}

func (sp *streamPlan) deliveryCost(revenue, units float64) float64 {
	if sp.perUnit {
		return units * sp.costPerUnit
	}
	margin := sp.marginPct
	if margin < 0 {
		margin = 0
	}
	if margin > 1 {
		margin = 1
	}
	return revenue * (1 - margin)
}

func buildStreamPlans(v *domain.Venture, ctl domain.Controls, res *Result) []streamPlan {
	plans := make([]streamPlan, 0, len(v.RevenueStreams))
	for _, s := range v.RevenueStreams {
		sc := ctl.ScenarioFor(s.ID)
		sp := streamPlan{
			id:           s.ID,
			active:       true,
			annual:       s.Billing == domain.BillingAnnual,
			perUnit:      s.DeliveryModel == domain.DeliveryPerUnit,
			initialUnits: s.InitialUnits,
		}

		if s.UnlockEventID != "" {
			event, ok := v.EventByID(s.UnlockEventID)
			if !ok {
				// Unknown gate: the stream never activates, degrade gracefully.
				sp.active = false
				res.Warnings = append(res.Warnings, domain.Warning{
					Entity:  s.ID,
					Field:   "unlock_event",
					Message: fmt.Sprintf("unknown timeline event %q; stream stays inactive", s.UnlockEventID),
				})
			} else {
				sp.activeFrom = event.Month
			}
		}

		sp.price = evalDist(s.PricePerUnit, sc, res, s.ID, "price_per_unit")
		// The entity risk scale is applied to the stream's adoption
		// intensity: it is the stream's single tunable magnitude.
		sp.acqRate = evalDist(s.AcquisitionRate, sc, res, s.ID, "acquisition_rate") * ctl.MultiplierFor(s.ID)
		// Churn is adverse: the optimistic (max) scenario takes the low end
		// of its range so that max >= mode >= min holds for stream revenue.
		sp.churn = evalOptional(s.ChurnRate, invertScenario(sc), res, s.ID, "churn_rate")
		sp.expansion = evalOptional(s.ExpansionRate, sc, res, s.ID, "expansion_rate")
		sp.cac = evalDist(s.CAC, sc, res, s.ID, "cac")
		sp.onboarding = evalOptional(s.OnboardingCost, sc, res, s.ID, "onboarding_cost")
		if sp.perUnit {
			sp.costPerUnit = evalOptional(s.CostPerUnit, sc, res, s.ID, "cost_per_unit")
		} else {
			sp.marginPct = evalOptional(s.GrossMargin, sc, res, s.ID, "gross_margin")
		}

		plans = append(plans, sp)
	}
	return plans
}

func invertScenario(s domain.Scenario) domain.Scenario {
	switch s {
	case domain.ScenarioMin:
		return domain.ScenarioMax
	case domain.ScenarioMax:
		return domain.ScenarioMin
	default:
		return domain.ScenarioMode
	}
}

type taskPlan struct {
	oneOffMonth *int
	oneOff      float64
	monthly     float64
	activeFrom  int
	activeTo    int
}

func buildTaskPlans(v *domain.Venture, sched *schedule.Result, ctl domain.Controls, horizon int, res *Result) []taskPlan {
	sc := ctl.GlobalScenario()
	plans := make([]taskPlan, 0, len(sched.Tasks))
	for _, ct := range sched.Tasks {
		t := ct.Task
		mult := ctl.MultiplierFor(t.ID)
		tp := taskPlan{}

		startMonth := int(math.Floor(ct.StartMonths + 1e-9))
		if t.OneOffCost != nil {
			if startMonth >= 0 && startMonth < horizon {
				m := startMonth
				tp.oneOffMonth = &m
			}
			tp.oneOff = evalDist(*t.OneOffCost, sc, res, t.ID, "one_off_cost") * mult
		}
		if t.MonthlyCost != nil {
			tp.monthly = evalDist(*t.MonthlyCost, sc, res, t.ID, "monthly_cost") * mult
			tp.activeFrom = startMonth
			if ct.EndMonths != nil {
				tp.activeTo = int(math.Ceil(*ct.EndMonths-1e-9)) - 1
			} else {
				tp.activeTo = horizon - 1
			}
		}
		plans = append(plans, tp)
	}
	return plans
}

type fixedPlan struct {
	active     bool
	activeFrom int
	monthly    float64
}

func buildFixedPlans(v *domain.Venture, ctl domain.Controls, res *Result) []fixedPlan {
	sc := ctl.GlobalScenario()
	plans := make([]fixedPlan, 0, len(v.FixedCosts))
	for _, c := range v.FixedCosts {
		fp := fixedPlan{active: true}
		if c.StartEventID != "" {
			event, ok := v.EventByID(c.StartEventID)
			if !ok {
				fp.active = false
				res.Warnings = append(res.Warnings, domain.Warning{
					Entity:  c.ID,
					Field:   "start_event",
					Message: fmt.Sprintf("unknown timeline event %q; cost never starts", c.StartEventID),
				})
			} else {
				fp.activeFrom = event.Month
			}
		}
		fp.monthly = evalDist(c.MonthlyCost, sc, res, c.ID, "monthly_cost") * ctl.MultiplierFor(c.ID)
		plans = append(plans, fp)
	}
	return plans
}

// legacySegmentMonth computes the TAM/SAM/SOM-ramp contribution for one
// month: active units ramp linearly to SOMUnits over RampMonths, revenue is
// active units x price, CAC applies to newly activated units.
func legacySegmentMonth(segments []domain.Segment, m int) (revenue, acquisition, newUnits float64) {
	for _, seg := range segments {
		active := segmentActiveUnits(seg, m)
		prev := segmentActiveUnits(seg, m-1)
		newly := active - prev
		if newly < 0 {
			newly = 0
		}
		revenue += active * seg.PricePerUnit
		acquisition += newly * seg.CAC
		newUnits += newly
	}
	return revenue, acquisition, newUnits
}

func segmentActiveUnits(seg domain.Segment, m int) float64 {
	if m < seg.StartMonth || seg.SOMUnits <= 0 {
		return 0
	}
	if seg.RampMonths <= 0 {
		return seg.SOMUnits
	}
	ramp := float64(m-seg.StartMonth+1) / float64(seg.RampMonths)
	if ramp > 1 {
		ramp = 1
	}
	return seg.SOMUnits * ramp
}

func evalDist(d domain.Distribution, sc domain.Scenario, res *Result, entity, field string) float64 {
	if _, clamped := d.Normalized(); clamped {
		res.Warnings = append(res.Warnings, domain.Warning{
			Entity:  entity,
			Field:   field,
			Message: "distribution range is misordered; values were clamped into min <= mode <= max",
		})
	}
	return d.Evaluate(sc)
}

func evalOptional(d *domain.Distribution, sc domain.Scenario, res *Result, entity, field string) float64 {
	if d == nil {
		return 0
	}
	return evalDist(*d, sc, res, entity, field)
}

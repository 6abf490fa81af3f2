package domain

import "time"

// Venture is the root value owned by the caller. The engine never mutates
// it; every operation returns new derived data.
type Venture struct {
	Meta           VentureMeta
	Tasks          []Task
	RevenueStreams []RevenueStream
	FixedCosts     []FixedCost
	Timeline       []TimelineEvent
	Markets        []Market
	Assumptions    []Assumption
	Risks          []Risk

	// Legacy segment model, retained for venture definitions that predate
	// revenue streams.
	Segments []Segment
	Opex     []OpexItem
}

type VentureMeta struct {
	Name           string
	Currency       string
	Start          time.Time
	HorizonMonths  int
	InitialReserve float64
}

type Task struct {
	ID    string
	Name  string
	Phase string

	// ManualStart is only meaningful when the task has no dependencies.
	ManualStart *time.Time

	// Duration is parsed once at load time; nil means ongoing (no computed end).
	Duration  *Duration
	DependsOn []DependencyRef

	OneOffCost  *Distribution
	MonthlyCost *Distribution
}

// Duration is a typed task duration, converted to fractional months for
// scheduling arithmetic.
type Duration struct {
	Value int
	Unit  DurationUnit
}

// Months converts the duration using d/30, w/4, m/1, y*12.
func (d Duration) Months() float64 {
	switch d.Unit {
	case UnitDays:
		return float64(d.Value) / 30
	case UnitWeeks:
		return float64(d.Value) / 4
	case UnitYears:
		return float64(d.Value) * 12
	default:
		return float64(d.Value)
	}
}

// DependencyRef is a typed dependency reference, parsed once at load time.
// It imposes a lower bound on the dependent task's computed start:
// referenced task's anchor date + offset.
type DependencyRef struct {
	TaskID       string
	Anchor       Anchor
	OffsetMonths float64

	// Raw preserves the original reference string for reporting.
	Raw string
}

// TimelineEvent is a named milestone used as an activation gate for revenue
// streams and fixed costs.
type TimelineEvent struct {
	ID          string
	Name        string
	Month       int
	Description string
}

type RevenueStream struct {
	ID           string
	Name         string
	MarketID     string
	PricingModel string

	// Unit economics.
	PricePerUnit  Distribution
	Billing       BillingFrequency
	DeliveryModel DeliveryCostModel
	GrossMargin   *Distribution // fraction of revenue kept, gross_margin model
	CostPerUnit   *Distribution // per_unit model

	// Adoption.
	InitialUnits    float64
	AcquisitionRate Distribution  // new units per month
	ChurnRate       *Distribution // fraction of existing units lost per month
	ExpansionRate   *Distribution // fraction of existing units added per month

	// Acquisition costs.
	CAC            Distribution
	OnboardingCost *Distribution

	// UnlockEventID gates activation; empty means active from month 0.
	UnlockEventID string
}

type FixedCost struct {
	ID          string
	Name        string
	MonthlyCost Distribution

	// StartEventID gates recognition; empty means from month 0.
	StartEventID string
}

// Market, Assumption and Risk are descriptive entities with no simulation
// effect.
type Market struct {
	ID          string
	Name        string
	Description string
	TAMUnits    float64
	SAMUnits    float64
	SOMUnits    float64
}

type Assumption struct {
	ID        string
	Statement string
	Basis     string
}

type Risk struct {
	ID         string
	Name       string
	Severity   string
	Mitigation string
}

// Segment is the legacy TAM/SAM/SOM-ramped adoption model: active units ramp
// linearly from zero to SOMUnits over RampMonths starting at StartMonth.
type Segment struct {
	ID           string
	Name         string
	SOMUnits     float64
	RampMonths   int
	PricePerUnit float64
	CAC          float64
	StartMonth   int
}

type OpexItem struct {
	Name          string
	MonthlyAmount float64
	StartMonth    int
}

// EventByID resolves a timeline event, reporting whether it exists.
func (v *Venture) EventByID(id string) (TimelineEvent, bool) {
	for _, e := range v.Timeline {
		if e.ID == id {
			return e, true
		}
	}
	return TimelineEvent{}, false
}

// TaskByID resolves a task, reporting whether it exists.
func (v *Venture) TaskByID(id string) (Task, bool) {
	for _, t := range v.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// StreamByID resolves a revenue stream, reporting whether it exists.
func (v *Venture) StreamByID(id string) (RevenueStream, bool) {
	for _, s := range v.RevenueStreams {
		if s.ID == id {
			return s, true
		}
	}
	return RevenueStream{}, false
}

// Clone returns a deep copy of the venture. Perturbation-based analysis
// works on clones so the caller's definition is never mutated.
func (v *Venture) Clone() *Venture {
	out := &Venture{
		Meta:        v.Meta,
		Timeline:    append([]TimelineEvent(nil), v.Timeline...),
		Markets:     append([]Market(nil), v.Markets...),
		Assumptions: append([]Assumption(nil), v.Assumptions...),
		Risks:       append([]Risk(nil), v.Risks...),
		Segments:    append([]Segment(nil), v.Segments...),
		Opex:        append([]OpexItem(nil), v.Opex...),
	}
	out.Tasks = make([]Task, len(v.Tasks))
	for i, t := range v.Tasks {
		out.Tasks[i] = t.clone()
	}
	out.RevenueStreams = make([]RevenueStream, len(v.RevenueStreams))
	for i, s := range v.RevenueStreams {
		out.RevenueStreams[i] = s.clone()
	}
	out.FixedCosts = make([]FixedCost, len(v.FixedCosts))
	for i, c := range v.FixedCosts {
		out.FixedCosts[i] = c.clone()
	}
	return out
}

func (t Task) clone() Task {
	out := t
	if t.ManualStart != nil {
		ms := *t.ManualStart
		out.ManualStart = &ms
	}
	if t.Duration != nil {
		d := *t.Duration
		out.Duration = &d
	}
	out.DependsOn = append([]DependencyRef(nil), t.DependsOn...)
	out.OneOffCost = cloneDistPtr(t.OneOffCost)
	out.MonthlyCost = cloneDistPtr(t.MonthlyCost)
	return out
}

func (s RevenueStream) clone() RevenueStream {
	out := s
	out.PricePerUnit = s.PricePerUnit.Clone()
	out.GrossMargin = cloneDistPtr(s.GrossMargin)
	out.CostPerUnit = cloneDistPtr(s.CostPerUnit)
	out.AcquisitionRate = s.AcquisitionRate.Clone()
	out.ChurnRate = cloneDistPtr(s.ChurnRate)
	out.ExpansionRate = cloneDistPtr(s.ExpansionRate)
	out.CAC = s.CAC.Clone()
	out.OnboardingCost = cloneDistPtr(s.OnboardingCost)
	return out
}

func (c FixedCost) clone() FixedCost {
	out := c
	out.MonthlyCost = c.MonthlyCost.Clone()
	return out
}

func cloneDistPtr(d *Distribution) *Distribution {
	if d == nil {
		return nil
	}
	c := d.Clone()
	return &c
}

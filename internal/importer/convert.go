package importer

import (
	"errors"
	"time"

	"venturecast/internal/domain"
	"venturecast/internal/schedule"
)

const (
	defaultCurrency     = "USD"
	defaultPricingModel = "subscription"
)

// ImportVenture loads, validates and converts a venture definition file.
func ImportVenture(path string) (*domain.Venture, []domain.Warning, error) {
	schema, err := LoadVentureSchema(path)
	if err != nil {
		return nil, nil, err
	}
	return ConvertVentureSchema(schema)
}

// ImportVentureBytes is ImportVenture for in-memory payloads.
func ImportVentureBytes(data []byte) (*domain.Venture, []domain.Warning, error) {
	schema, err := ParseVentureSchema(data)
	if err != nil {
		return nil, nil, err
	}
	return ConvertVentureSchema(schema)
}

// ConvertVentureSchema validates a parsed definition and converts it to the
// domain model. Validation errors reject the payload; warnings accompany the
// converted venture.
func ConvertVentureSchema(schema *VentureSchema) (*domain.Venture, []domain.Warning, error) {
	errs, warns := ValidateVentureSchema(schema)
	if len(errs) > 0 {
		return nil, warns, errors.Join(errs...)
	}

	start, _ := time.Parse(dateLayout, schema.Meta.Start)
	v := &domain.Venture{
		Meta: domain.VentureMeta{
			Name:           schema.Meta.Name,
			Currency:       domain.CoalesceStr(schema.Meta.Currency, defaultCurrency),
			Start:          start,
			HorizonMonths:  schema.Meta.HorizonMonths,
			InitialReserve: schema.Meta.InitialReserve,
		},
	}

	for _, e := range schema.Timeline {
		v.Timeline = append(v.Timeline, domain.TimelineEvent{
			ID:          e.ID,
			Name:        domain.CoalesceStr(e.Name, e.ID),
			Month:       e.Month,
			Description: e.Description,
		})
	}
	for _, m := range schema.Markets {
		v.Markets = append(v.Markets, domain.Market{
			ID:          m.ID,
			Name:        domain.CoalesceStr(m.Name, m.ID),
			Description: m.Description,
			TAMUnits:    m.TAMUnits,
			SAMUnits:    m.SAMUnits,
			SOMUnits:    m.SOMUnits,
		})
	}

	taskIDs := make(map[string]bool, len(schema.Tasks))
	for _, t := range schema.Tasks {
		taskIDs[t.ID] = true
	}
	for _, t := range schema.Tasks {
		v.Tasks = append(v.Tasks, convertTask(t, taskIDs))
	}

	for _, s := range schema.RevenueStreams {
		v.RevenueStreams = append(v.RevenueStreams, convertStream(s))
	}
	if schema.CostModel != nil {
		for _, c := range schema.CostModel.FixedMonthlyCosts {
			v.FixedCosts = append(v.FixedCosts, domain.FixedCost{
				ID:           c.ID,
				Name:         domain.CoalesceStr(c.Name, c.ID),
				MonthlyCost:  *convertDist(c.MonthlyCost),
				StartEventID: c.StartEvent,
			})
		}
	}

	for _, a := range schema.Assumptions {
		v.Assumptions = append(v.Assumptions, domain.Assumption{
			ID:        a.ID,
			Statement: a.Statement,
			Basis:     a.Basis,
		})
	}
	for _, r := range schema.Risks {
		v.Risks = append(v.Risks, domain.Risk{
			ID:         r.ID,
			Name:       domain.CoalesceStr(r.Name, r.ID),
			Severity:   r.Severity,
			Mitigation: r.Mitigation,
		})
	}
	for _, s := range schema.Segments {
		v.Segments = append(v.Segments, domain.Segment{
			ID:           s.ID,
			Name:         domain.CoalesceStr(s.Name, s.ID),
			SOMUnits:     s.SOMUnits,
			RampMonths:   s.RampMonths,
			PricePerUnit: s.PricePerUnit,
			CAC:          s.CAC,
			StartMonth:   s.StartMonth,
		})
	}
	for _, o := range schema.Opex {
		v.Opex = append(v.Opex, domain.OpexItem{
			Name:          o.Name,
			MonthlyAmount: o.MonthlyAmount,
			StartMonth:    o.StartMonth,
		})
	}

	return v, warns, nil
}

func convertTask(t TaskImport, taskIDs map[string]bool) domain.Task {
	out := domain.Task{
		ID:          t.ID,
		Name:        domain.CoalesceStr(t.Name, t.ID),
		Phase:       t.Phase,
		OneOffCost:  convertDist(t.OneOffCost),
		MonthlyCost: convertDist(t.MonthlyCost),
	}
	if t.Start != nil && *t.Start != "" {
		if ms, err := time.Parse(dateLayout, *t.Start); err == nil {
			out.ManualStart = &ms
		}
	}
	// Unparseable durations were already flagged; the task is kept as ongoing.
	if d, err := schedule.ParseDuration(t.Duration); err == nil {
		out.Duration = d
	}
	for _, raw := range t.DependsOn {
		// Unknown references survive conversion so the scheduler can report
		// them in context; they impose no start constraint.
		ref, _ := schedule.ParseDependencyRef(raw, taskIDs)
		out.DependsOn = append(out.DependsOn, ref)
	}
	return out
}

func convertStream(s RevenueStreamImport) domain.RevenueStream {
	out := domain.RevenueStream{
		ID:           s.ID,
		Name:         domain.CoalesceStr(s.Name, s.ID),
		MarketID:     s.Market,
		PricingModel: domain.CoalesceStr(s.PricingModel, defaultPricingModel),

		PricePerUnit:  *convertDist(s.PricePerUnit),
		Billing:       domain.BillingFrequency(domain.CoalesceStr(s.BillingFrequency, string(domain.BillingMonthly))),
		DeliveryModel: domain.DeliveryCostModel(domain.CoalesceStr(s.DeliveryCostModel, string(domain.DeliveryGrossMargin))),
		GrossMargin:   convertDist(s.GrossMarginPct),
		CostPerUnit:   convertDist(s.CostPerUnit),

		InitialUnits:    domain.Float64FromPtrWithDefault(0, s.InitialUnits),
		AcquisitionRate: *convertDist(s.AcquisitionRate),
		ChurnRate:       convertDist(s.ChurnRate),
		ExpansionRate:   convertDist(s.ExpansionRate),

		CAC:            *convertDist(s.CAC),
		OnboardingCost: convertDist(s.OnboardingCost),

		UnlockEventID: s.UnlockEvent,
	}
	return out
}

// convertDist maps an import range to a domain distribution. Validation has
// already guaranteed that a non-nil range carries min/max or, for triangular,
// at least a mode.
func convertDist(d *DistributionImport) *domain.Distribution {
	if d == nil {
		return nil
	}
	if d.Min == nil || d.Max == nil {
		p := domain.PointDistribution(*d.Mode)
		return &p
	}
	out := domain.Distribution{
		Kind: domain.DistributionKind(d.Type),
		Min:  *d.Min,
		Mode: copyFloat(d.Mode),
		Max:  *d.Max,
	}
	return &out
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

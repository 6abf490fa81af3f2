package importer

import (
	"errors"
	"fmt"
	"time"

	"venturecast/internal/domain"
	"venturecast/internal/schedule"
)

const dateLayout = "2006-01-02"

// ValidateVentureSchema checks a venture definition before conversion.
// Errors reject the payload (the caller falls back to a default venture);
// warnings are recoverable conditions the engine will clamp or degrade.
func ValidateVentureSchema(schema *VentureSchema) ([]error, []domain.Warning) {
	var errs []error
	var warns []domain.Warning

	errs = append(errs, validateMeta(schema.Meta)...)

	if schema.Tasks == nil {
		errs = append(errs, fmt.Errorf("tasks is required and must be a list"))
	}

	eventIDs := make(map[string]bool)
	errs = append(errs, validateTimeline(schema.Timeline, eventIDs)...)

	marketIDs := make(map[string]bool)
	for i, m := range schema.Markets {
		if m.ID == "" {
			errs = append(errs, fmt.Errorf("markets[%d].id is required", i))
		} else if marketIDs[m.ID] {
			errs = append(errs, fmt.Errorf("markets[%d].id: duplicate id %q", i, m.ID))
		} else {
			marketIDs[m.ID] = true
		}
	}

	taskErrs, taskWarns := validateTasks(schema.Tasks)
	errs = append(errs, taskErrs...)
	warns = append(warns, taskWarns...)

	streamErrs, streamWarns := validateStreams(schema.RevenueStreams, eventIDs, marketIDs)
	errs = append(errs, streamErrs...)
	warns = append(warns, streamWarns...)

	if schema.CostModel != nil {
		costErrs, costWarns := validateFixedCosts(schema.CostModel.FixedMonthlyCosts, eventIDs)
		errs = append(errs, costErrs...)
		warns = append(warns, costWarns...)
	}

	for i, seg := range schema.Segments {
		if seg.SOMUnits < 0 {
			errs = append(errs, fmt.Errorf("segments[%d].somUnits must be non-negative", i))
		}
	}

	return errs, warns
}

func validateMeta(m *MetaImport) []error {
	if m == nil {
		return []error{fmt.Errorf("meta is required")}
	}
	var errs []error
	if m.Start == "" {
		errs = append(errs, fmt.Errorf("meta.start is required"))
	} else if _, err := time.Parse(dateLayout, m.Start); err != nil {
		errs = append(errs, fmt.Errorf("meta.start: invalid date format %q (expected YYYY-MM-DD)", m.Start))
	}
	if m.HorizonMonths <= 0 {
		errs = append(errs, fmt.Errorf("meta.horizonMonths must be positive"))
	}
	if m.InitialReserve < 0 {
		errs = append(errs, fmt.Errorf("meta.initialReserve must be non-negative"))
	}
	return errs
}

func validateTimeline(events []TimelineEventImport, eventIDs map[string]bool) []error {
	var errs []error
	for i, e := range events {
		prefix := fmt.Sprintf("timeline[%d]", i)
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if eventIDs[e.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, e.ID))
		} else {
			eventIDs[e.ID] = true
		}
		if e.Month < 0 {
			errs = append(errs, fmt.Errorf("%s.month must be non-negative", prefix))
		}
	}
	return errs
}

func validateTasks(tasks []TaskImport) ([]error, []domain.Warning) {
	var errs []error
	var warns []domain.Warning

	taskIDs := make(map[string]bool)
	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if taskIDs[t.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, t.ID))
		} else {
			taskIDs[t.ID] = true
		}

		if t.Start != nil && *t.Start != "" {
			if _, err := time.Parse(dateLayout, *t.Start); err != nil {
				errs = append(errs, fmt.Errorf("%s.start: invalid date format %q (expected YYYY-MM-DD)", prefix, *t.Start))
			}
			if len(t.DependsOn) > 0 {
				warns = append(warns, domain.Warning{
					Entity:  t.ID,
					Field:   "start",
					Message: "manual start is ignored on tasks with dependencies",
				})
			}
		}

		if t.Duration != "" {
			if _, err := schedule.ParseDuration(t.Duration); err != nil {
				warns = append(warns, domain.Warning{
					Entity:  t.ID,
					Field:   "duration",
					Message: fmt.Sprintf("unparseable duration %q; task treated as ongoing", t.Duration),
				})
			}
		}

		errs = append(errs, validateDistribution(prefix+".oneOffCost", t.OneOffCost, false, &warns, t.ID, "one_off_cost")...)
		errs = append(errs, validateDistribution(prefix+".monthlyCost", t.MonthlyCost, false, &warns, t.ID, "monthly_cost")...)
	}

	// Unknown dependency ids degrade to "no constraint" at schedule time;
	// cycles are structural and reject the payload.
	for _, t := range tasks {
		for _, raw := range t.DependsOn {
			if _, err := schedule.ParseDependencyRef(raw, taskIDs); err != nil {
				warns = append(warns, domain.Warning{
					Entity:  t.ID,
					Field:   "dependsOn",
					Message: err.Error(),
				})
			}
		}
	}
	if err := detectTaskCycles(tasks, taskIDs); err != nil {
		errs = append(errs, err)
	}

	return errs, warns
}

func detectTaskCycles(tasks []TaskImport, taskIDs map[string]bool) error {
	domainTasks := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		dt := domain.Task{ID: t.ID}
		for _, raw := range t.DependsOn {
			ref, err := schedule.ParseDependencyRef(raw, taskIDs)
			if err != nil {
				continue
			}
			dt.DependsOn = append(dt.DependsOn, ref)
		}
		domainTasks = append(domainTasks, dt)
	}
	_, err := schedule.Resolve(domainTasks, time.Time{}, 1)
	var cerr *schedule.CycleError
	if errors.As(err, &cerr) {
		return fmt.Errorf("tasks: %w", cerr)
	}
	return nil
}

func validateStreams(streams []RevenueStreamImport, eventIDs, marketIDs map[string]bool) ([]error, []domain.Warning) {
	var errs []error
	var warns []domain.Warning

	streamIDs := make(map[string]bool)
	for i, s := range streams {
		prefix := fmt.Sprintf("revenueStreams[%d]", i)
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if streamIDs[s.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, s.ID))
		} else {
			streamIDs[s.ID] = true
		}

		if s.PricingModel != "" && !domain.ValidPricingModels[s.PricingModel] {
			errs = append(errs, fmt.Errorf("%s.pricingModel: invalid value %q", prefix, s.PricingModel))
		}
		if s.BillingFrequency != "" && !domain.ValidBillingFrequencies[s.BillingFrequency] {
			errs = append(errs, fmt.Errorf("%s.billingFrequency: invalid value %q", prefix, s.BillingFrequency))
		}
		if s.DeliveryCostModel != "" && !domain.ValidDeliveryCostModels[s.DeliveryCostModel] {
			errs = append(errs, fmt.Errorf("%s.deliveryCostModel: invalid value %q", prefix, s.DeliveryCostModel))
		}

		errs = append(errs, validateDistribution(prefix+".pricePerUnit", s.PricePerUnit, true, &warns, s.ID, "price_per_unit")...)
		errs = append(errs, validateDistribution(prefix+".acquisitionRate", s.AcquisitionRate, true, &warns, s.ID, "acquisition_rate")...)
		errs = append(errs, validateDistribution(prefix+".cac", s.CAC, true, &warns, s.ID, "cac")...)
		errs = append(errs, validateDistribution(prefix+".grossMarginPct", s.GrossMarginPct, false, &warns, s.ID, "gross_margin")...)
		errs = append(errs, validateDistribution(prefix+".costPerUnit", s.CostPerUnit, false, &warns, s.ID, "cost_per_unit")...)
		errs = append(errs, validateDistribution(prefix+".churnRate", s.ChurnRate, false, &warns, s.ID, "churn_rate")...)
		errs = append(errs, validateDistribution(prefix+".expansionRate", s.ExpansionRate, false, &warns, s.ID, "expansion_rate")...)
		errs = append(errs, validateDistribution(prefix+".onboardingCost", s.OnboardingCost, false, &warns, s.ID, "onboarding_cost")...)

		if s.Market != "" && !marketIDs[s.Market] {
			warns = append(warns, domain.Warning{
				Entity:  s.ID,
				Field:   "market",
				Message: fmt.Sprintf("unknown market %q", s.Market),
			})
		}
		if s.UnlockEvent != "" && !eventIDs[s.UnlockEvent] {
			warns = append(warns, domain.Warning{
				Entity:  s.ID,
				Field:   "unlockEvent",
				Message: fmt.Sprintf("unknown timeline event %q; stream will never activate", s.UnlockEvent),
			})
		}

		switch domain.DeliveryCostModel(s.DeliveryCostModel) {
		case domain.DeliveryPerUnit:
			if s.CostPerUnit == nil {
				warns = append(warns, domain.Warning{
					Entity:  s.ID,
					Field:   "costPerUnit",
					Message: "per_unit delivery model without costPerUnit; delivery cost will be zero",
				})
			}
		default:
			if s.GrossMarginPct == nil {
				warns = append(warns, domain.Warning{
					Entity:  s.ID,
					Field:   "grossMarginPct",
					Message: "gross_margin delivery model without grossMarginPct; delivery cost will equal revenue",
				})
			}
		}
	}

	return errs, warns
}

func validateFixedCosts(costs []FixedCostImport, eventIDs map[string]bool) ([]error, []domain.Warning) {
	var errs []error
	var warns []domain.Warning

	costIDs := make(map[string]bool)
	for i, c := range costs {
		prefix := fmt.Sprintf("costModel.fixedMonthlyCosts[%d]", i)
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if costIDs[c.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, c.ID))
		} else {
			costIDs[c.ID] = true
		}

		errs = append(errs, validateDistribution(prefix+".monthlyCost", c.MonthlyCost, true, &warns, c.ID, "monthly_cost")...)

		if c.StartEvent != "" && !eventIDs[c.StartEvent] {
			warns = append(warns, domain.Warning{
				Entity:  c.ID,
				Field:   "startEvent",
				Message: fmt.Sprintf("unknown timeline event %q; cost will never start", c.StartEvent),
			})
		}
	}

	return errs, warns
}

// validateDistribution checks a range. A missing required range or an
// undefined variant rejects the payload; a misordered range is a warning
// since the evaluator clamps it.
func validateDistribution(field string, d *DistributionImport, required bool, warns *[]domain.Warning, entity, warnField string) []error {
	if d == nil {
		if required {
			return []error{fmt.Errorf("%s is required", field)}
		}
		return nil
	}
	if !domain.ValidDistributionKinds[d.Type] {
		return []error{fmt.Errorf("%s.type: invalid value %q", field, d.Type)}
	}
	if d.Min == nil || d.Max == nil {
		if d.Type != string(domain.DistTriangular) {
			return []error{fmt.Errorf("%s: %s distribution without a (min, mode, max) range has undefined evaluation", field, d.Type)}
		}
		// A mode-only triangular collapses to a point estimate.
		if d.Mode != nil && d.Min == nil && d.Max == nil {
			return nil
		}
		return []error{fmt.Errorf("%s: min and max are required", field)}
	}

	probe := domain.Distribution{Kind: domain.DistributionKind(d.Type), Min: *d.Min, Mode: d.Mode, Max: *d.Max}
	if !probe.Ordered() {
		*warns = append(*warns, domain.Warning{
			Entity:  entity,
			Field:   warnField,
			Message: fmt.Sprintf("%s: range violates min <= mode <= max and will be clamped", field),
		})
	}
	return nil
}

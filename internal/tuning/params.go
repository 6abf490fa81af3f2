// Package tuning perturbs venture parameters and re-runs the simulator to
// rank sensitivities and propose bounded adjustments toward a goal.
package tuning

import (
	"venturecast/internal/domain"
)

type ParameterGroup string

const (
	GroupStreamPrice       ParameterGroup = "stream_price"
	GroupStreamCAC         ParameterGroup = "stream_cac"
	GroupStreamAcquisition ParameterGroup = "stream_acquisition"
	GroupStreamChurn       ParameterGroup = "stream_churn"
	GroupFixedCost         ParameterGroup = "fixed_cost"
)

// Parameter is one tunable numeric input: a distribution belonging to a
// revenue stream or fixed cost. Scaling a parameter scales its whole range
// so scenario selection stays meaningful on the adjusted venture.
type Parameter struct {
	EntityID   string
	EntityName string
	Name       string
	Group      ParameterGroup

	// Baseline is the mode-evaluated current value, used for reporting.
	Baseline float64

	apply func(v *domain.Venture, factor float64)
}

// Adjusted returns a deep copy of the venture with this parameter scaled by
// factor. The input venture is never mutated.
func (p Parameter) Adjusted(v *domain.Venture, factor float64) *domain.Venture {
	clone := v.Clone()
	p.apply(clone, factor)
	return clone
}

// Parameters enumerates every tunable parameter of the venture: per revenue
// stream the price, CAC, acquisition rate and churn rate (when present), and
// per fixed cost its monthly amount.
func Parameters(v *domain.Venture) []Parameter {
	var params []Parameter

	for _, s := range v.RevenueStreams {
		id := s.ID
		name := domain.CoalesceStr(s.Name, s.ID)

		params = append(params, Parameter{
			EntityID: id, EntityName: name,
			Name: "price_per_unit", Group: GroupStreamPrice,
			Baseline: s.PricePerUnit.Evaluate(domain.ScenarioMode),
			apply: func(v *domain.Venture, factor float64) {
				if i := streamIndex(v, id); i >= 0 {
					v.RevenueStreams[i].PricePerUnit = v.RevenueStreams[i].PricePerUnit.Scaled(factor)
				}
			},
		})
		params = append(params, Parameter{
			EntityID: id, EntityName: name,
			Name: "cac", Group: GroupStreamCAC,
			Baseline: s.CAC.Evaluate(domain.ScenarioMode),
			apply: func(v *domain.Venture, factor float64) {
				if i := streamIndex(v, id); i >= 0 {
					v.RevenueStreams[i].CAC = v.RevenueStreams[i].CAC.Scaled(factor)
				}
			},
		})
		params = append(params, Parameter{
			EntityID: id, EntityName: name,
			Name: "acquisition_rate", Group: GroupStreamAcquisition,
			Baseline: s.AcquisitionRate.Evaluate(domain.ScenarioMode),
			apply: func(v *domain.Venture, factor float64) {
				if i := streamIndex(v, id); i >= 0 {
					v.RevenueStreams[i].AcquisitionRate = v.RevenueStreams[i].AcquisitionRate.Scaled(factor)
				}
			},
		})
		if s.ChurnRate != nil {
			params = append(params, Parameter{
				EntityID: id, EntityName: name,
				Name: "churn_rate", Group: GroupStreamChurn,
				Baseline: s.ChurnRate.Evaluate(domain.ScenarioMode),
				apply: func(v *domain.Venture, factor float64) {
					if i := streamIndex(v, id); i >= 0 && v.RevenueStreams[i].ChurnRate != nil {
						scaled := v.RevenueStreams[i].ChurnRate.Scaled(factor)
						v.RevenueStreams[i].ChurnRate = &scaled
					}
				},
			})
		}
	}

	for _, c := range v.FixedCosts {
		id := c.ID
		params = append(params, Parameter{
			EntityID: id, EntityName: domain.CoalesceStr(c.Name, c.ID),
			Name: "monthly_cost", Group: GroupFixedCost,
			Baseline: c.MonthlyCost.Evaluate(domain.ScenarioMode),
			apply: func(v *domain.Venture, factor float64) {
				for i := range v.FixedCosts {
					if v.FixedCosts[i].ID == id {
						v.FixedCosts[i].MonthlyCost = v.FixedCosts[i].MonthlyCost.Scaled(factor)
						return
					}
				}
			},
		})
	}

	return params
}

func streamIndex(v *domain.Venture, id string) int {
	for i := range v.RevenueStreams {
		if v.RevenueStreams[i].ID == id {
			return i
		}
	}
	return -1
}

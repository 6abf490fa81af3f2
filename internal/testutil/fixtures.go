package testutil

import (
	"time"

	"venturecast/internal/domain"
)

// VentureOption mutates a test venture before it is returned.
type VentureOption func(*domain.Venture)

func WithHorizon(months int) VentureOption {
	return func(v *domain.Venture) {
		v.Meta.HorizonMonths = months
	}
}

func WithInitialReserve(amount float64) VentureOption {
	return func(v *domain.Venture) {
		v.Meta.InitialReserve = amount
	}
}

func WithTasks(tasks ...domain.Task) VentureOption {
	return func(v *domain.Venture) {
		v.Tasks = tasks
	}
}

func WithStreams(streams ...domain.RevenueStream) VentureOption {
	return func(v *domain.Venture) {
		v.RevenueStreams = streams
	}
}

func WithFixedCosts(costs ...domain.FixedCost) VentureOption {
	return func(v *domain.Venture) {
		v.FixedCosts = costs
	}
}

// NewTestVenture builds the canonical test venture: one build task with a
// one-off and a monthly cost over six months, a payroll fixed cost, and one
// subscription stream unlocked at month 9 with mode price $50, 30 new
// units/month, 5% churn and 80% gross margin.
func NewTestVenture(opts ...VentureOption) *domain.Venture {
	oneOff := domain.PointDistribution(50000)
	monthly := domain.PointDistribution(10000)
	churn := domain.NewTriangular(0.03, 0.05, 0.08)
	margin := domain.NewTriangular(0.70, 0.80, 0.90)
	onboarding := domain.PointDistribution(20)

	v := &domain.Venture{
		Meta: domain.VentureMeta{
			Name:           "test venture",
			Currency:       "USD",
			Start:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			HorizonMonths:  72,
			InitialReserve: 250000,
		},
		Tasks: []domain.Task{{
			ID:          "build",
			Name:        "Build product",
			Phase:       "build",
			Duration:    &domain.Duration{Value: 6, Unit: domain.UnitMonths},
			OneOffCost:  &oneOff,
			MonthlyCost: &monthly,
		}},
		Timeline: []domain.TimelineEvent{{
			ID:    "launch",
			Name:  "Public launch",
			Month: 9,
		}},
		RevenueStreams: []domain.RevenueStream{{
			ID:              "saas",
			Name:            "SaaS subscriptions",
			MarketID:        "smb",
			PricingModel:    "subscription",
			PricePerUnit:    domain.NewTriangular(40, 50, 60),
			Billing:         domain.BillingMonthly,
			DeliveryModel:   domain.DeliveryGrossMargin,
			GrossMargin:     &margin,
			AcquisitionRate: domain.NewTriangular(20, 30, 45),
			ChurnRate:       &churn,
			CAC:             domain.NewTriangular(80, 100, 130),
			OnboardingCost:  &onboarding,
			UnlockEventID:   "launch",
		}},
		FixedCosts: []domain.FixedCost{{
			ID:          "payroll",
			Name:        "Founders payroll",
			MonthlyCost: domain.PointDistribution(8000),
		}},
		Markets: []domain.Market{{
			ID:       "smb",
			Name:     "SMB",
			TAMUnits: 500000,
			SAMUnits: 80000,
			SOMUnits: 8000,
		}},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturecast/internal/domain"
)

func TestConvertVentureSchema_FullPayload(t *testing.T) {
	v, warns, err := ImportVentureBytes([]byte(`{
		"meta": {"name": "demo", "start": "2026-03-15", "horizonMonths": 48, "initialReserve": 75000},
		"timeline": [{"id": "launch", "month": 5}],
		"markets": [{"id": "smb", "name": "SMB", "tamUnits": 100000, "samUnits": 20000, "somUnits": 4000}],
		"tasks": [
			{"id": "build", "name": "Build MVP", "phase": "dev", "duration": "10w", "oneOffCost": 15000, "monthlyCost": {"min": 4000, "mode": 5000, "max": 7000}},
			{"id": "ship", "duration": "1m", "dependsOn": ["builds+2w"]}
		],
		"revenueStreams": [{
			"id": "saas",
			"pricePerUnit": {"min": 40, "mode": 50, "max": 60},
			"billingFrequency": "annual",
			"deliveryCostModel": "per_unit",
			"costPerUnit": 8,
			"initialUnits": 25,
			"acquisitionRate": {"min": 10, "mode": 20, "max": 30},
			"churnRate": 0.04,
			"expansionRate": 0.01,
			"cac": 120,
			"onboardingCost": 15,
			"unlockEvent": "launch",
			"market": "smb"
		}],
		"costModel": {"fixedMonthlyCosts": [{"id": "rent", "name": "Office rent", "monthlyCost": 2500, "startEvent": "launch"}]},
		"assumptions": [{"id": "a1", "statement": "SMB demand holds"}],
		"risks": [{"id": "r1", "name": "Churn spike", "severity": "high"}],
		"segments": [{"id": "legacy", "somUnits": 1000, "rampMonths": 12, "pricePerUnit": 30, "startMonth": 3}],
		"opex": [{"name": "Hosting", "monthlyAmount": 400, "startMonth": 1}]
	}`))
	require.NoError(t, err)
	assert.Empty(t, warns)

	assert.Equal(t, "demo", v.Meta.Name)
	assert.Equal(t, "USD", v.Meta.Currency, "currency defaults when omitted")
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), v.Meta.Start)
	assert.Equal(t, 48, v.Meta.HorizonMonths)
	assert.Equal(t, 75000.0, v.Meta.InitialReserve)

	build, ok := v.TaskByID("build")
	require.True(t, ok)
	assert.Equal(t, "Build MVP", build.Name)
	require.NotNil(t, build.Duration)
	assert.Equal(t, 2.5, build.Duration.Months())
	require.NotNil(t, build.OneOffCost)
	assert.Equal(t, 15000.0, build.OneOffCost.Min)
	require.NotNil(t, build.MonthlyCost)
	assert.Equal(t, 5000.0, build.MonthlyCost.ModeValue())

	ship, ok := v.TaskByID("ship")
	require.True(t, ok)
	require.Len(t, ship.DependsOn, 1)
	assert.Equal(t, "build", ship.DependsOn[0].TaskID)
	assert.Equal(t, domain.AnchorStart, ship.DependsOn[0].Anchor)
	assert.Equal(t, 0.5, ship.DependsOn[0].OffsetMonths)

	saas, ok := v.StreamByID("saas")
	require.True(t, ok)
	assert.Equal(t, "saas", saas.Name, "name falls back to the id")
	assert.Equal(t, "subscription", saas.PricingModel)
	assert.Equal(t, domain.BillingAnnual, saas.Billing)
	assert.Equal(t, domain.DeliveryPerUnit, saas.DeliveryModel)
	require.NotNil(t, saas.CostPerUnit)
	assert.Equal(t, 8.0, saas.CostPerUnit.ModeValue())
	assert.Equal(t, 25.0, saas.InitialUnits)
	require.NotNil(t, saas.ChurnRate)
	assert.Equal(t, 0.04, saas.ChurnRate.ModeValue())
	assert.Equal(t, "launch", saas.UnlockEventID)

	require.Len(t, v.FixedCosts, 1)
	assert.Equal(t, "Office rent", v.FixedCosts[0].Name)
	assert.Equal(t, "launch", v.FixedCosts[0].StartEventID)

	assert.Len(t, v.Markets, 1)
	assert.Len(t, v.Assumptions, 1)
	assert.Len(t, v.Risks, 1)
	assert.Len(t, v.Segments, 1)
	assert.Len(t, v.Opex, 1)
}

func TestConvertVentureSchema_Defaults(t *testing.T) {
	v, warns, err := ImportVentureBytes([]byte(`{
		"meta": {"name": "min", "start": "2026-01-01", "horizonMonths": 12},
		"tasks": [{"id": "t1"}],
		"revenueStreams": [{
			"id": "s1",
			"pricePerUnit": 10,
			"grossMarginPct": 0.7,
			"acquisitionRate": 5,
			"cac": 50
		}]
	}`))
	require.NoError(t, err)
	assert.Empty(t, warns)

	t1, ok := v.TaskByID("t1")
	require.True(t, ok)
	assert.Nil(t, t1.Duration, "no duration means ongoing")
	assert.Nil(t, t1.ManualStart)

	s1, ok := v.StreamByID("s1")
	require.True(t, ok)
	assert.Equal(t, domain.BillingMonthly, s1.Billing)
	assert.Equal(t, domain.DeliveryGrossMargin, s1.DeliveryModel)
	assert.Zero(t, s1.InitialUnits)
	assert.Nil(t, s1.ChurnRate)
	assert.Empty(t, s1.UnlockEventID)
}

func TestConvertVentureSchema_RejectsInvalid(t *testing.T) {
	_, _, err := ImportVentureBytes([]byte(`{"tasks": []}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meta is required")
}

func TestConvertVentureSchema_KeepsWarningsOnUnknownRefs(t *testing.T) {
	v, warns, err := ImportVentureBytes([]byte(`{
		"meta": {"name": "w", "start": "2026-01-01", "horizonMonths": 12},
		"tasks": [{"id": "t1", "dependsOn": ["t9"]}]
	}`))
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, "dependsOn", warns[0].Field)

	// The unresolved reference is preserved for schedule-time reporting.
	t1, ok := v.TaskByID("t1")
	require.True(t, ok)
	require.Len(t, t1.DependsOn, 1)
	assert.Equal(t, "t9", t1.DependsOn[0].TaskID)
}

func TestConvertVentureSchema_ManualStartParsed(t *testing.T) {
	v, _, err := ImportVentureBytes([]byte(`{
		"meta": {"name": "m", "start": "2026-01-01", "horizonMonths": 12},
		"tasks": [{"id": "t1", "start": "2026-04-01", "duration": "2m"}]
	}`))
	require.NoError(t, err)

	t1, ok := v.TaskByID("t1")
	require.True(t, ok)
	require.NotNil(t, t1.ManualStart)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *t1.ManualStart)
}

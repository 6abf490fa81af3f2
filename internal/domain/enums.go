package domain

import "fmt"

type Scenario string

const (
	ScenarioMin  Scenario = "min"
	ScenarioMode Scenario = "mode"
	ScenarioMax  Scenario = "max"
)

// ValidScenarios is the canonical set of accepted scenario strings.
var ValidScenarios = map[string]bool{
	"min": true, "mode": true, "max": true,
}

// ParseScenario converts a user-supplied string into a Scenario.
func ParseScenario(s string) (Scenario, error) {
	if !ValidScenarios[s] {
		return "", fmt.Errorf("invalid scenario %q (expected min, mode or max)", s)
	}
	return Scenario(s), nil
}

type DistributionKind string

const (
	DistTriangular DistributionKind = "triangular"
	DistNormal     DistributionKind = "normal"
	DistLognormal  DistributionKind = "lognormal"
)

// ValidDistributionKinds is the canonical set of accepted distribution type tags.
var ValidDistributionKinds = map[string]bool{
	"triangular": true, "normal": true, "lognormal": true,
}

type BillingFrequency string

const (
	BillingMonthly BillingFrequency = "monthly"
	BillingAnnual  BillingFrequency = "annual"
)

var ValidBillingFrequencies = map[string]bool{
	"monthly": true, "annual": true,
}

type DeliveryCostModel string

const (
	DeliveryGrossMargin DeliveryCostModel = "gross_margin"
	DeliveryPerUnit     DeliveryCostModel = "per_unit"
)

var ValidDeliveryCostModels = map[string]bool{
	"gross_margin": true, "per_unit": true,
}

// ValidPricingModels is the canonical set of accepted pricing model tags.
// The tag is descriptive; revenue mechanics are driven by billing frequency
// and the delivery cost model.
var ValidPricingModels = map[string]bool{
	"subscription": true, "transactional": true, "license": true,
	"usage": true, "service": true,
}

type Anchor string

const (
	AnchorStart Anchor = "start"
	AnchorEnd   Anchor = "end"
)

type DurationUnit string

const (
	UnitDays   DurationUnit = "d"
	UnitWeeks  DurationUnit = "w"
	UnitMonths DurationUnit = "m"
	UnitYears  DurationUnit = "y"
)

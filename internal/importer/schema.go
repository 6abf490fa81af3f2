package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// VentureSchema is the top-level JSON structure for a venture definition.
type VentureSchema struct {
	Meta           *MetaImport           `json:"meta"`
	Tasks          []TaskImport          `json:"tasks"`
	RevenueStreams []RevenueStreamImport `json:"revenueStreams,omitempty"`
	CostModel      *CostModelImport      `json:"costModel,omitempty"`
	Timeline       []TimelineEventImport `json:"timeline,omitempty"`
	Markets        []MarketImport        `json:"markets,omitempty"`
	Assumptions    []AssumptionImport    `json:"assumptions,omitempty"`
	Risks          []RiskImport          `json:"risks,omitempty"`

	// Legacy segment model fields.
	Segments []SegmentImport `json:"segments,omitempty"`
	Opex     []OpexImport    `json:"opex,omitempty"`
}

// MetaImport defines the venture-level fields in the definition file.
type MetaImport struct {
	Name           string  `json:"name"`
	Currency       string  `json:"currency,omitempty"`
	Start          string  `json:"start"`
	HorizonMonths  int     `json:"horizonMonths"`
	InitialReserve float64 `json:"initialReserve,omitempty"`
}

// DistributionImport is an uncertainty range in the definition file. A bare
// JSON number is accepted as a degenerate range with min = mode = max.
type DistributionImport struct {
	Type string
	Min  *float64
	Mode *float64
	Max  *float64
}

// UnmarshalJSON accepts either a numeric literal or a tagged range object.
func (d *DistributionImport) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		m := num
		d.Type = "triangular"
		d.Min, d.Mode, d.Max = &num, &m, &num
		return nil
	}
	var obj struct {
		Type string   `json:"type,omitempty"`
		Min  *float64 `json:"min,omitempty"`
		Mode *float64 `json:"mode,omitempty"`
		Max  *float64 `json:"max,omitempty"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("distribution must be a number or a range object: %w", err)
	}
	if obj.Type == "" {
		obj.Type = "triangular"
	}
	d.Type, d.Min, d.Mode, d.Max = obj.Type, obj.Min, obj.Mode, obj.Max
	return nil
}

// TaskImport defines a task in the definition file.
type TaskImport struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Phase       string              `json:"phase,omitempty"`
	Start       *string             `json:"start,omitempty"`
	Duration    string              `json:"duration,omitempty"`
	DependsOn   []string            `json:"dependsOn,omitempty"`
	OneOffCost  *DistributionImport `json:"oneOffCost,omitempty"`
	MonthlyCost *DistributionImport `json:"monthlyCost,omitempty"`
}

// RevenueStreamImport defines a revenue stream in the definition file.
type RevenueStreamImport struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Market       string `json:"market,omitempty"`
	PricingModel string `json:"pricingModel,omitempty"`

	PricePerUnit      *DistributionImport `json:"pricePerUnit"`
	BillingFrequency  string              `json:"billingFrequency,omitempty"`
	DeliveryCostModel string              `json:"deliveryCostModel,omitempty"`
	GrossMarginPct    *DistributionImport `json:"grossMarginPct,omitempty"`
	CostPerUnit       *DistributionImport `json:"costPerUnit,omitempty"`

	InitialUnits    *float64            `json:"initialUnits,omitempty"`
	AcquisitionRate *DistributionImport `json:"acquisitionRate"`
	ChurnRate       *DistributionImport `json:"churnRate,omitempty"`
	ExpansionRate   *DistributionImport `json:"expansionRate,omitempty"`

	CAC            *DistributionImport `json:"cac"`
	OnboardingCost *DistributionImport `json:"onboardingCost,omitempty"`

	UnlockEvent string `json:"unlockEvent,omitempty"`
}

// CostModelImport groups the fixed-cost definitions.
type CostModelImport struct {
	FixedMonthlyCosts []FixedCostImport `json:"fixedMonthlyCosts"`
}

// FixedCostImport defines a recurring cost in the definition file.
type FixedCostImport struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	MonthlyCost *DistributionImport `json:"monthlyCost"`
	StartEvent  string              `json:"startEvent,omitempty"`
}

// TimelineEventImport defines a milestone used as an activation gate.
type TimelineEventImport struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Month       int    `json:"month"`
	Description string `json:"description,omitempty"`
}

type MarketImport struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	TAMUnits    float64 `json:"tamUnits,omitempty"`
	SAMUnits    float64 `json:"samUnits,omitempty"`
	SOMUnits    float64 `json:"somUnits,omitempty"`
}

type AssumptionImport struct {
	ID        string `json:"id"`
	Statement string `json:"statement"`
	Basis     string `json:"basis,omitempty"`
}

type RiskImport struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Severity   string `json:"severity,omitempty"`
	Mitigation string `json:"mitigation,omitempty"`
}

// SegmentImport is the legacy TAM/SAM/SOM ramp model.
type SegmentImport struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SOMUnits     float64 `json:"somUnits"`
	RampMonths   int     `json:"rampMonths,omitempty"`
	PricePerUnit float64 `json:"pricePerUnit"`
	CAC          float64 `json:"cac,omitempty"`
	StartMonth   int     `json:"startMonth,omitempty"`
}

type OpexImport struct {
	Name          string  `json:"name"`
	MonthlyAmount float64 `json:"monthlyAmount"`
	StartMonth    int     `json:"startMonth,omitempty"`
}

// LoadVentureSchema reads and parses a venture definition JSON file.
func LoadVentureSchema(path string) (*VentureSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseVentureSchema(data)
}

// ParseVentureSchema parses a venture definition from raw JSON.
func ParseVentureSchema(data []byte) (*VentureSchema, error) {
	var schema VentureSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing venture definition: %w", err)
	}
	return &schema, nil
}

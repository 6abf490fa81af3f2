package domain

// MonthlySnapshot is the simulator's atomic output unit: one entry per month,
// 0-indexed from the project start.
type MonthlySnapshot struct {
	Month int

	Revenue float64
	Costs   float64
	// Profit is EBITDA: revenue minus all recognized costs.
	Profit float64
	// Cash is initial reserve plus cumulative profit through this month.
	Cash             float64
	CumulativeProfit float64

	// Cost breakdown.
	DeliveryCosts    float64
	AcquisitionCosts float64
	TaskCosts        float64
	FixedCosts       float64
	OpexCosts        float64

	// UnitsByStream holds end-of-month unit counts keyed by stream ID.
	UnitsByStream map[string]float64
	// NewUnits is the gross units acquired this month across streams.
	NewUnits float64
	// BlendedCAC is acquisition spend divided by gross new units this month,
	// zero when nothing was acquired.
	BlendedCAC float64
}

// Warning is a recoverable condition attached to a computation result rather
// than aborting it.
type Warning struct {
	Entity  string
	Field   string
	Message string
}

package simulate

import "venturecast/internal/domain"

// roiWindowMonths is the evaluation window for the 5-year ROI.
const roiWindowMonths = 60

// Metrics summarizes a monthly series for sensitivity and optimization.
type Metrics struct {
	// ProfitableMonth is the first month where cumulative profit turns
	// positive; nil if it never does within the window.
	ProfitableMonth *int

	// InvestedCapital is the peak funding requirement: the deepest point the
	// cumulative profit curve reaches below zero.
	InvestedCapital float64

	// ROIBreakevenMonth is the first month where cumulative profit recovers
	// the invested capital; nil if it never does within the window.
	ROIBreakevenMonth *int

	// ROI5Year is cumulative profit at the end of the window divided by
	// invested capital (zero when nothing was invested).
	ROI5Year float64

	FinalCash        float64
	CumulativeProfit float64
}

// ComputeMetrics derives run metrics from a monthly series. The window is
// the first 60 months, or the whole series when the horizon is shorter.
func ComputeMetrics(months []domain.MonthlySnapshot) Metrics {
	var m Metrics
	n := len(months)
	if n == 0 {
		return m
	}
	if n > roiWindowMonths {
		n = roiWindowMonths
	}

	invested := 0.0
	for i := 0; i < n; i++ {
		cum := months[i].CumulativeProfit
		if m.ProfitableMonth == nil && cum > 0 {
			idx := i
			m.ProfitableMonth = &idx
		}
		if -cum > invested {
			invested = -cum
		}
	}
	m.InvestedCapital = invested

	if invested > 0 {
		for i := 0; i < n; i++ {
			if months[i].CumulativeProfit >= invested {
				idx := i
				m.ROIBreakevenMonth = &idx
				break
			}
		}
	}

	m.CumulativeProfit = months[n-1].CumulativeProfit
	m.FinalCash = months[len(months)-1].Cash
	if invested > 0 {
		m.ROI5Year = m.CumulativeProfit / invested
	}
	return m
}

// MonthOrWindow collapses an optional month index to a comparable scalar,
// using the window length as the "never" sentinel. Used when differencing
// perturbed runs against a baseline.
func MonthOrWindow(m *int, window int) int {
	if m == nil {
		return window
	}
	return *m
}

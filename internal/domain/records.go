package domain

import "time"

// StoredVenture wraps a venture definition with persistence metadata.
type StoredVenture struct {
	ID        string
	Venture   *Venture
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Name returns the venture's display name.
func (s *StoredVenture) Name() string {
	if s.Venture == nil {
		return ""
	}
	return s.Venture.Meta.Name
}

type RunKind string

const (
	RunSimulation   RunKind = "simulation"
	RunSensitivity  RunKind = "sensitivity"
	RunOptimization RunKind = "optimization"
)

// SavedRun is a persisted engine run: the controls that produced it, the
// headline metrics, and the full monthly series for later comparison.
type SavedRun struct {
	ID        string
	VentureID string
	Kind      RunKind
	Label     string
	Scenario  Scenario
	Controls  Controls

	ProfitableMonth *int
	InvestedCapital float64
	ROI5Year        float64
	FinalCash       float64

	Months   []MonthlySnapshot
	Warnings []Warning

	CreatedAt time.Time
}

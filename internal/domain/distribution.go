package domain

// Distribution is an uncertainty range collapsed to a scalar by a scenario
// selection. Triangular is the fully specified variant. Normal and lognormal
// tags are accepted as input but are only evaluable when they carry a
// (min, mode, max) range, in which case the triangular rule applies; the
// importer rejects them otherwise.
type Distribution struct {
	Kind DistributionKind
	Min  float64
	Mode *float64
	Max  float64
}

// NewTriangular builds a triangular distribution with an explicit mode.
func NewTriangular(min, mode, max float64) Distribution {
	return Distribution{Kind: DistTriangular, Min: min, Mode: &mode, Max: max}
}

// PointDistribution treats a numeric literal as a degenerate triangular
// distribution with min = mode = max.
func PointDistribution(v float64) Distribution {
	return NewTriangular(v, v, v)
}

// ModeValue returns the mode, falling back to the midpoint of min/max when
// the mode is absent.
func (d Distribution) ModeValue() float64 {
	if d.Mode != nil {
		return *d.Mode
	}
	return (d.Min + d.Max) / 2
}

// Ordered reports whether min <= mode <= max holds.
func (d Distribution) Ordered() bool {
	m := d.ModeValue()
	return d.Min <= m && m <= d.Max
}

// Normalized returns a copy with min/mode/max sorted into a valid ordering
// and reports whether any clamping was required. Violations are recoverable:
// the simulation must still complete so users see directional output.
func (d Distribution) Normalized() (Distribution, bool) {
	if d.Ordered() {
		return d, false
	}
	lo, mid, hi := sort3(d.Min, d.ModeValue(), d.Max)
	return NewTriangular(lo, mid, hi), true
}

// Evaluate collapses the distribution to a scalar for the given scenario.
// A misordered range is normalized first so evaluation never inverts.
func (d Distribution) Evaluate(s Scenario) float64 {
	nd, _ := d.Normalized()
	switch s {
	case ScenarioMin:
		return nd.Min
	case ScenarioMax:
		return nd.Max
	default:
		return nd.ModeValue()
	}
}

// Expected returns the triangular expected value (min + mode + max) / 3.
// Used for default displays, not scenario-gated computation.
func (d Distribution) Expected() float64 {
	nd, _ := d.Normalized()
	return (nd.Min + nd.ModeValue() + nd.Max) / 3
}

// Scaled returns a copy with all range points multiplied by factor. Used by
// sensitivity perturbation and optimizer adjustments.
func (d Distribution) Scaled(factor float64) Distribution {
	out := Distribution{Kind: d.Kind, Min: d.Min * factor, Max: d.Max * factor}
	if d.Mode != nil {
		m := *d.Mode * factor
		out.Mode = &m
	}
	return out
}

// Clone returns a deep copy.
func (d Distribution) Clone() Distribution {
	return d.Scaled(1)
}

func sort3(a, b, c float64) (float64, float64, float64) {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return a, b, c
}

package domain

// MultiplierMin and MultiplierMax bound the per-entity risk scale.
const (
	MultiplierMin = 0.0
	MultiplierMax = 5.0
)

// Controls carries all scenario state for a simulation run. Scenario
// selection and risk-scale multipliers are explicit arguments, never ambient
// configuration.
type Controls struct {
	// Scenario is the global selector.
	Scenario Scenario

	// StreamScenarios overrides the global selector per revenue stream,
	// keyed by stream ID.
	StreamScenarios map[string]Scenario

	// Multipliers are per-entity risk scales (task, fixed cost or revenue
	// stream ID), each clamped to [0, 5]. Absent entries mean 1.0.
	Multipliers map[string]float64
}

// DefaultControls selects the mode scenario with no overrides.
func DefaultControls() Controls {
	return Controls{Scenario: ScenarioMode}
}

// ScenarioFor returns the effective scenario for a revenue stream.
func (c Controls) ScenarioFor(streamID string) Scenario {
	if s, ok := c.StreamScenarios[streamID]; ok && ValidScenarios[string(s)] {
		return s
	}
	if ValidScenarios[string(c.Scenario)] {
		return c.Scenario
	}
	return ScenarioMode
}

// GlobalScenario returns the effective global scenario.
func (c Controls) GlobalScenario() Scenario {
	if ValidScenarios[string(c.Scenario)] {
		return c.Scenario
	}
	return ScenarioMode
}

// MultiplierFor returns the clamped risk scale for an entity, defaulting to 1.
func (c Controls) MultiplierFor(entityID string) float64 {
	m, ok := c.Multipliers[entityID]
	if !ok {
		return 1
	}
	if m < MultiplierMin {
		return MultiplierMin
	}
	if m > MultiplierMax {
		return MultiplierMax
	}
	return m
}

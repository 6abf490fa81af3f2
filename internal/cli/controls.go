package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"venturecast/internal/domain"
)

// controlFlags collects the scenario and risk-scale flags shared by the
// simulate, sensitivity and optimize commands.
type controlFlags struct {
	scenario        string
	streamScenarios []string
	multipliers     []string
}

func addControlFlags(cmd *cobra.Command) *controlFlags {
	cf := &controlFlags{}
	cmd.Flags().StringVar(&cf.scenario, "scenario", "mode", "Global scenario (min, mode or max)")
	cmd.Flags().StringArrayVar(&cf.streamScenarios, "stream-scenario", nil,
		"Per-stream scenario override as <streamId>=<scenario> (repeatable)")
	cmd.Flags().StringArrayVar(&cf.multipliers, "multiplier", nil,
		"Per-entity risk scale as <entityId>=<factor>, clamped to [0, 5] (repeatable)")
	return cf
}

func (cf *controlFlags) controls() (domain.Controls, error) {
	ctl := domain.DefaultControls()

	scenario, err := domain.ParseScenario(cf.scenario)
	if err != nil {
		return ctl, err
	}
	ctl.Scenario = scenario

	for _, pair := range cf.streamScenarios {
		id, value, err := splitPair(pair, "--stream-scenario")
		if err != nil {
			return ctl, err
		}
		s, err := domain.ParseScenario(value)
		if err != nil {
			return ctl, fmt.Errorf("stream %q: %w", id, err)
		}
		if ctl.StreamScenarios == nil {
			ctl.StreamScenarios = make(map[string]domain.Scenario)
		}
		ctl.StreamScenarios[id] = s
	}

	for _, pair := range cf.multipliers {
		id, value, err := splitPair(pair, "--multiplier")
		if err != nil {
			return ctl, err
		}
		m, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return ctl, fmt.Errorf("multiplier for %q: invalid factor %q", id, value)
		}
		if ctl.Multipliers == nil {
			ctl.Multipliers = make(map[string]float64)
		}
		ctl.Multipliers[id] = m
	}

	return ctl, nil
}

func splitPair(pair, flag string) (string, string, error) {
	id, value, ok := strings.Cut(pair, "=")
	if !ok || id == "" || value == "" {
		return "", "", fmt.Errorf("%s expects <id>=<value>, got %q", flag, pair)
	}
	return id, value, nil
}

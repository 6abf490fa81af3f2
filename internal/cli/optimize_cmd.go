package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"venturecast/internal/cli/formatter"
	"venturecast/internal/tuning"
)

func parseParameterGroups(names []string) (tuning.ParameterGroups, error) {
	if len(names) == 0 {
		return tuning.AllParameterGroups(), nil
	}
	var groups tuning.ParameterGroups
	for _, name := range names {
		switch tuning.ParameterGroup(strings.TrimSpace(name)) {
		case tuning.GroupStreamPrice:
			groups.StreamPrices = true
		case tuning.GroupStreamCAC:
			groups.StreamCAC = true
		case tuning.GroupStreamAcquisition:
			groups.StreamAcquisition = true
		case tuning.GroupStreamChurn:
			groups.StreamChurn = true
		case tuning.GroupFixedCost:
			groups.FixedCosts = true
		default:
			return groups, fmt.Errorf("invalid parameter group %q (expected stream_price, stream_cac, stream_acquisition, stream_churn or fixed_cost)", name)
		}
	}
	return groups, nil
}

func newOptimizeCmd(app *App) *cobra.Command {
	var (
		goalStr       string
		maxAdjustment float64
		groupNames    []string
	)

	cmd := &cobra.Command{
		Use:   "optimize <venture>",
		Short: "Search for bounded parameter adjustments toward a goal",
		Args:  cobra.ExactArgs(1),
	}

	ctl := addControlFlags(cmd)
	cmd.Flags().StringVar(&goalStr, "goal", "balanced",
		"Optimization goal (maximize_roi, minimize_profitability_time or balanced)")
	cmd.Flags().Float64Var(&maxAdjustment, "max-adjustment", 15,
		"Bound on per-parameter adjustment, in percent")
	cmd.Flags().StringSliceVar(&groupNames, "groups", nil,
		"Parameter groups to search (default: all)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		controls, err := ctl.controls()
		if err != nil {
			return err
		}
		goal, err := tuning.ParseGoal(goalStr)
		if err != nil {
			return err
		}
		groups, err := parseParameterGroups(groupNames)
		if err != nil {
			return err
		}

		stored, err := app.Ventures.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		res, err := app.Analysis.Optimize(cmd.Context(), stored.ID, controls, goal, groups, maxAdjustment)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		start := stored.Venture.Meta.Start
		fmt.Fprintln(out, formatter.Header(fmt.Sprintf("optimize · %s · ±%.0f%%", goal, maxAdjustment)))

		if len(res.Recommendations) == 0 {
			fmt.Fprintln(out, formatter.Dim("No adjustment inside the bound improves the goal."))
		} else {
			rows := make([][]string, 0, len(res.Recommendations))
			for _, rec := range res.Recommendations {
				rows = append(rows, []string{
					rec.EntityName,
					rec.Parameter,
					fmt.Sprintf("%.2f", rec.CurrentValue),
					fmt.Sprintf("%.2f", rec.SuggestedValue),
					fmt.Sprintf("%+.1f%%", rec.ChangePercent),
				})
			}
			fmt.Fprint(out, formatter.RenderTable(
				[]string{"ENTITY", "PARAMETER", "CURRENT", "SUGGESTED", "CHANGE"}, rows))
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "Profitable from     %s %s %s\n",
			formatter.ProfitableMonth(res.CurrentMetrics.ProfitableMonth, start),
			formatter.Dim("→"),
			formatter.ProfitableMonth(res.OptimizedMetrics.ProfitableMonth, start))
		fmt.Fprintf(out, "5-year ROI          %s %s %s (%s)\n",
			formatter.Percent(res.CurrentMetrics.ROI5Year),
			formatter.Dim("→"),
			formatter.Percent(res.OptimizedMetrics.ROI5Year),
			formatter.DeltaStyle(res.Improvements.ROI5YearDelta).Render(
				formatter.SignedPercentPoints(res.Improvements.ROI5YearDelta)))
		fmt.Fprintf(out, "Iterations          %d\n", res.Iterations)
		if !res.Converged {
			fmt.Fprintln(out, formatter.StyleYellow.Render("Search cancelled early; showing best result so far."))
		}
		return nil
	}

	return cmd
}

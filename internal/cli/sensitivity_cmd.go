package cli

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"

	"venturecast/internal/cli/formatter"
	"venturecast/internal/tuning"
)

func newSensitivityCmd(app *App) *cobra.Command {
	var (
		perturbation float64
		workers      int
		top          int
	)

	cmd := &cobra.Command{
		Use:   "sensitivity <venture>",
		Short: "Rank parameters by their impact on profitability and ROI",
		Args:  cobra.ExactArgs(1),
	}

	ctl := addControlFlags(cmd)
	cmd.Flags().Float64Var(&perturbation, "perturbation", 10, "Perturbation applied to each parameter, in percent")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel simulator runs (0 = one per CPU)")
	cmd.Flags().IntVar(&top, "top", 0, "Show only the N highest-impact parameters")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		controls, err := ctl.controls()
		if err != nil {
			return err
		}

		results, err := app.Analysis.Sensitivity(cmd.Context(), args[0], controls, tuning.AnalyzeOptions{
			PerturbationPct: perturbation,
			Workers:         workers,
		})
		if err != nil {
			return err
		}

		// Most ROI leverage first.
		sort.SliceStable(results, func(i, j int) bool {
			return math.Abs(results[i].ROIImpact) > math.Abs(results[j].ROIImpact)
		})
		if top > 0 && top < len(results) {
			results = results[:top]
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, formatter.Header(fmt.Sprintf("sensitivity · %+.0f%% per parameter", perturbation)))

		rows := make([][]string, 0, len(results))
		for _, r := range results {
			rows = append(rows, []string{
				r.EntityName,
				r.Parameter,
				string(r.Group),
				formatter.DeltaStyle(float64(-r.ProfitabilityImpact)).Render(formatter.SignedMonths(r.ProfitabilityImpact)),
				formatter.DeltaStyle(r.ROIImpact).Render(formatter.SignedPercentPoints(r.ROIImpact)),
			})
		}
		fmt.Fprint(out, formatter.RenderTable(
			[]string{"ENTITY", "PARAMETER", "GROUP", "PROFITABILITY", "5Y ROI"}, rows))
		return nil
	}

	return cmd
}

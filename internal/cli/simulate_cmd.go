package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"venturecast/internal/cli/formatter"
)

func newSimulateCmd(app *App) *cobra.Command {
	var (
		save   string
		months bool
	)

	cmd := &cobra.Command{
		Use:   "simulate <venture>",
		Short: "Run the monthly financial projection",
		Args:  cobra.ExactArgs(1),
	}

	ctl := addControlFlags(cmd)
	cmd.Flags().StringVar(&save, "save", "", "Persist the run under this label")
	cmd.Flags().BoolVar(&months, "months", false, "Print the full monthly series")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		controls, err := ctl.controls()
		if err != nil {
			return err
		}

		stored, err := app.Ventures.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		run, err := app.Projections.Simulate(cmd.Context(), stored.ID, controls, save)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		meta := stored.Venture.Meta
		m := run.Metrics

		fmt.Fprintln(out, formatter.Header(fmt.Sprintf("%s · %s scenario", meta.Name, controls.GlobalScenario())))
		fmt.Fprintf(out, "Profitable from     %s\n", formatter.ProfitableMonth(m.ProfitableMonth, meta.Start))
		fmt.Fprintf(out, "ROI breakeven       %s\n", formatter.ProfitableMonth(m.ROIBreakevenMonth, meta.Start))
		fmt.Fprintf(out, "Invested capital    %s\n", formatter.Money(m.InvestedCapital, meta.Currency))
		fmt.Fprintf(out, "5-year ROI          %s\n", formatter.Percent(m.ROI5Year))
		fmt.Fprintf(out, "Final cash          %s\n",
			formatter.CashStyle(m.FinalCash).Render(formatter.Money(m.FinalCash, meta.Currency)))

		if months {
			fmt.Fprintln(out)
			rows := make([][]string, 0, len(run.Result.Months))
			for _, snap := range run.Result.Months {
				rows = append(rows, []string{
					formatter.MonthLabel(meta.Start, snap.Month),
					formatter.Money(snap.Revenue, ""),
					formatter.Money(snap.Costs, ""),
					formatter.CashStyle(snap.Profit).Render(formatter.Money(snap.Profit, "")),
					formatter.CashStyle(snap.Cash).Render(formatter.Money(snap.Cash, "")),
				})
			}
			fmt.Fprint(out, formatter.RenderTable(
				[]string{"MONTH", "REVENUE", "COSTS", "PROFIT", "CASH"}, rows))
		}

		for _, w := range run.Result.Warnings {
			fmt.Fprintf(out, "%s %s.%s: %s\n",
				formatter.StyleYellow.Render("warning:"), w.Entity, w.Field, w.Message)
		}
		if run.SavedRunID != "" {
			fmt.Fprintf(out, "\nSaved run %q (%s)\n", save, run.SavedRunID)
		}
		return nil
	}

	return cmd
}

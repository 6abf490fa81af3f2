package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"venturecast/internal/cli/formatter"
)

func newVentureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "venture",
		Short: "Manage stored ventures",
	}

	cmd.AddCommand(
		newVentureListCmd(app),
		newVentureShowCmd(app),
		newVentureDeleteCmd(app),
		newVentureRunsCmd(app),
	)

	return cmd
}

func newVentureListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored ventures",
		RunE: func(cmd *cobra.Command, args []string) error {
			ventures, err := app.Ventures.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(ventures) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No ventures stored. Use 'venturecast import <file>'."))
				return nil
			}

			rows := make([][]string, 0, len(ventures))
			for _, v := range ventures {
				meta := v.Venture.Meta
				rows = append(rows, []string{
					v.Name(),
					meta.Start.Format("2006-01-02"),
					strconv.Itoa(meta.HorizonMonths),
					formatter.Money(meta.InitialReserve, meta.Currency),
					v.ID,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(),
				formatter.RenderTable([]string{"NAME", "START", "HORIZON", "RESERVE", "ID"}, rows))
			return nil
		},
	}
}

func newVentureShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <venture>",
		Short: "Show a stored venture's definition summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := app.Ventures.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			v := stored.Venture
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, formatter.Header(v.Meta.Name))
			fmt.Fprintf(out, "Start %s, horizon %d months, initial reserve %s\n\n",
				v.Meta.Start.Format("2006-01-02"), v.Meta.HorizonMonths,
				formatter.Money(v.Meta.InitialReserve, v.Meta.Currency))

			if len(v.Tasks) > 0 {
				rows := make([][]string, 0, len(v.Tasks))
				for _, t := range v.Tasks {
					dur := "ongoing"
					if t.Duration != nil {
						dur = fmt.Sprintf("%.1fmo", t.Duration.Months())
					}
					deps := ""
					for i, d := range t.DependsOn {
						if i > 0 {
							deps += ", "
						}
						deps += d.Raw
					}
					rows = append(rows, []string{t.ID, t.Name, dur, deps})
				}
				fmt.Fprintln(out, formatter.RenderTable([]string{"TASK", "NAME", "DURATION", "DEPENDS ON"}, rows))
			}

			if len(v.RevenueStreams) > 0 {
				rows := make([][]string, 0, len(v.RevenueStreams))
				for _, s := range v.RevenueStreams {
					rows = append(rows, []string{
						s.ID,
						s.Name,
						string(s.Billing),
						fmt.Sprintf("%.0f/%.0f/%.0f", s.PricePerUnit.Min, s.PricePerUnit.ModeValue(), s.PricePerUnit.Max),
						s.UnlockEventID,
					})
				}
				fmt.Fprintln(out, formatter.RenderTable([]string{"STREAM", "NAME", "BILLING", "PRICE MIN/MODE/MAX", "UNLOCK"}, rows))
			}

			if len(v.FixedCosts) > 0 {
				rows := make([][]string, 0, len(v.FixedCosts))
				for _, c := range v.FixedCosts {
					rows = append(rows, []string{
						c.ID, c.Name,
						formatter.Money(c.MonthlyCost.ModeValue(), v.Meta.Currency),
						c.StartEventID,
					})
				}
				fmt.Fprintln(out, formatter.RenderTable([]string{"FIXED COST", "NAME", "MONTHLY", "STARTS AT"}, rows))
			}
			return nil
		},
	}
}

func newVentureDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <venture>",
		Short: "Delete a stored venture and its saved runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Ventures.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted venture %s\n", args[0])
			return nil
		},
	}
}

func newVentureRunsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "runs <venture>",
		Short: "List saved runs for a venture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := app.Ventures.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			runs, err := app.Projections.ListRuns(cmd.Context(), stored.ID)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No saved runs. Use 'simulate --save <label>'."))
				return nil
			}

			currency := stored.Venture.Meta.Currency
			start := stored.Venture.Meta.Start
			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				rows = append(rows, []string{
					r.Label,
					string(r.Scenario),
					formatter.ProfitableMonth(r.ProfitableMonth, start),
					formatter.Money(r.InvestedCapital, currency),
					formatter.Percent(r.ROI5Year),
					r.CreatedAt.Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"LABEL", "SCENARIO", "PROFITABLE", "INVESTED", "5Y ROI", "SAVED"}, rows))
			return nil
		},
	}
}

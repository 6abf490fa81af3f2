package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"venturecast/internal/cli/formatter"
)

func newScheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <venture>",
		Short: "Resolve the task schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Projections.Schedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(res.Tasks))
			for _, t := range res.Tasks {
				end := formatter.Dim("ongoing")
				if t.End != nil {
					end = t.End.Format("2006-01-02")
				}
				rows = append(rows, []string{
					t.Task.ID,
					t.Task.Name,
					t.Start.Format("2006-01-02"),
					end,
					fmt.Sprintf("%.1f", t.StartMonths),
				})
			}
			fmt.Fprint(out, formatter.RenderTable(
				[]string{"TASK", "NAME", "START", "END", "START MONTH"}, rows))

			for _, w := range res.Warnings {
				fmt.Fprintf(out, "%s %s.%s: %s\n",
					formatter.StyleYellow.Render("warning:"), w.Entity, w.Field, w.Message)
			}
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"venturecast/internal/cli/formatter"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a venture definition JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Imports.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verb := "Imported"
			if res.Replaced {
				verb = "Replaced"
			}
			fmt.Fprintf(out, "%s venture %s (%s)\n",
				verb, formatter.Bold(res.Venture.Name()), res.Venture.ID)

			for _, w := range res.Warnings {
				fmt.Fprintf(out, "%s %s.%s: %s\n",
					formatter.StyleYellow.Render("warning:"), w.Entity, w.Field, w.Message)
			}
			return nil
		},
	}
}

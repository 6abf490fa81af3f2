package cli

import (
	"github.com/spf13/cobra"

	"venturecast/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Ventures    service.VentureService
	Imports     service.ImportService
	Projections service.ProjectionService
	Analysis    service.AnalysisService
}

// NewRootCmd creates the top-level "venturecast" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "venturecast",
		Short: "Venture plan scheduling, simulation and optimization",
	}

	root.AddCommand(
		newImportCmd(app),
		newVentureCmd(app),
		newScheduleCmd(app),
		newSimulateCmd(app),
		newSensitivityCmd(app),
		newOptimizeCmd(app),
	)

	return root
}

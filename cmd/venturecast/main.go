package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"venturecast/internal/cli"
	"venturecast/internal/db"
	"venturecast/internal/repository"
	"venturecast/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.venturecast/venturecast.db
	dbPath := os.Getenv("VENTURECAST_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".venturecast", "venturecast.db")
	}

	// Strip colors when output is piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	ventureRepo := repository.NewSQLiteVentureRepo(database)
	runRepo := repository.NewSQLiteRunRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case telemetry goes to stderr when VENTURECAST_LOG is set.
	var logSink io.Writer
	if os.Getenv("VENTURECAST_LOG") != "" {
		logSink = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(logSink)

	app := &cli.App{
		Ventures:    service.NewVentureService(ventureRepo),
		Imports:     service.NewImportService(uow, observer),
		Projections: service.NewProjectionService(ventureRepo, runRepo, observer),
		Analysis:    service.NewAnalysisService(ventureRepo, observer),
	}

	return cli.NewRootCmd(app).Execute()
}

package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/luach/internal/config"
	"github.com/javiermolinar/luach/internal/db"
	"github.com/javiermolinar/luach/internal/grid"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   grid.Repository
	config *config.Config
	log    *zap.Logger
	root   *cobra.Command
	now    func() time.Time
}

// NewApp creates a new CLI application. A nil repo is opened on first use
// from the configured database path.
func NewApp(repo grid.Repository, cfg *config.Config, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{repo: repo, config: cfg, log: log, now: time.Now}

	a.root = &cobra.Command{
		Use:   "luach",
		Short: "A school calendar for exams, trips and holidays",
		Long: `Luach keeps a school's academic-year calendar: one row per week,
one cell per day, with official exams, mock exams, trips, vacations
and holidays placed on the right day for the right class.

It imports the ministry exam timetable, keeps placed exams in sync
when the timetable moves them, and exports the calendar to Excel or
a text message for parents and students.`,
		SilenceUsage: true,
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.newYearCmd())
	a.root.AddCommand(a.holidaysCmd())
	a.root.AddCommand(a.examsCmd())
	a.root.AddCommand(a.placeCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.resyncCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.shareCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "luach %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// ensureRepo opens the configured database if no repository was injected.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.log.Debug("opened database", zap.String("path", path))
	a.repo = repo
	return nil
}

// loadGrid fetches the configured school's grid.
func (a *App) loadGrid(ctx context.Context) (*grid.Grid, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	g, err := a.repo.GetGrid(ctx, a.config.School.ID)
	if errors.Is(err, grid.ErrGridNotFound) {
		return nil, fmt.Errorf("no calendar for school %q, run 'luach new-year' first: %w", a.config.School.ID, err)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching calendar: %w", err)
	}
	return g, nil
}

func (a *App) saveGrid(ctx context.Context, g *grid.Grid) error {
	if err := a.repo.SaveGrid(ctx, a.config.School.ID, g); err != nil {
		return fmt.Errorf("saving calendar: %w", err)
	}
	return nil
}

// today returns the current calendar date.
func (a *App) today() time.Time {
	return a.now()
}

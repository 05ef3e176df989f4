package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/luach/internal/grid"
	"github.com/javiermolinar/luach/internal/holidays"
)

func (a *App) holidaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Manage holidays, vacations and weekly readings",
	}
	cmd.AddCommand(a.holidaysLoadCmd())
	cmd.AddCommand(a.holidaysImportCmd())
	return cmd
}

func (a *App) holidaysLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Store holiday sets from a YAML seed file",
		Long: `Store holidays, school vacations and weekly readings from a YAML
seed file keyed by civil year. Sets already stored for the same year
are replaced.

Example:
  luach holidays load holidays.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			sets, err := holidays.LoadFile(path)
			if err != nil {
				return fmt.Errorf("reading seed file: %w", err)
			}
			if len(sets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Seed file is empty, nothing stored.")
				return nil
			}

			if err := a.repo.SaveHolidaySets(context.Background(), sets); err != nil {
				return fmt.Errorf("storing holidays: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, s := range sets {
				fmt.Fprintf(out, "  %d %s: %d holidays, %d vacations, %d readings\n",
					s.Year, formatMuted(s.Label), len(s.Holidays), len(s.Vacations), len(s.Parasha))
			}
			fmt.Fprintf(out, "Stored %s holiday sets.\n", formatStats(fmt.Sprint(len(sets))))
			return nil
		},
	}
}

func (a *App) holidaysImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Apply stored holidays to the current calendar",
		Long: `Apply the stored holidays and vacations to the current calendar.
Events already present with the same text are not added again, so the
command can be re-run safely.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			g, err := a.loadGrid(ctx)
			if err != nil {
				return err
			}

			first, last, ok := g.Span()
			if !ok {
				return fmt.Errorf("calendar has no weeks")
			}
			sets := make([]grid.HolidaySet, 0, 2)
			for y := first.Year(); y <= last.Year(); y++ {
				set, err := a.repo.GetHolidaySet(ctx, y)
				if err != nil {
					return fmt.Errorf("fetching holidays for %d: %w", y, err)
				}
				if set != nil {
					sets = append(sets, *set)
				}
			}

			readings := len(g.Parasha)
			res := g.ImportHolidays(sets...)
			for _, s := range res.Skipped {
				a.log.Warn("skipped holiday record", zap.String("record", s))
			}

			out := cmd.OutOrStdout()
			if res.Added == 0 && len(g.Parasha) == readings {
				fmt.Fprintln(out, "Holidays are already up to date.")
				return nil
			}
			if err := a.saveGrid(ctx, g); err != nil {
				return err
			}
			fmt.Fprintf(out, "Added %s events and %d weekly readings.\n",
				formatStats(fmt.Sprint(res.Added)), len(g.Parasha)-readings)
			return nil
		},
	}
}

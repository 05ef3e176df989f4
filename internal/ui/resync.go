package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/luach/internal/ministry"
)

func (a *App) resyncCmd() *cobra.Command {
	var classFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "resync",
		Short: "Align placed exams with the stored timetable",
		Long: `Compare the exams placed on the calendar with the stored timetable.
Labels and times are refreshed; exams whose date changed are moved to
the new day. A move onto a day with a trip is made and reported. Exams
whose new date is outside the calendar stay where they are.

Example:
  luach exams load bagrut-summer.xlsx && luach resync --class 12B`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			class, err := a.config.Class(classFlag)
			if err != nil {
				return err
			}
			ctx := context.Background()
			g, err := a.loadGrid(ctx)
			if err != nil {
				return err
			}

			records, err := a.repo.ListExams(ctx)
			if err != nil {
				return fmt.Errorf("fetching exams: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No timetable stored (see 'luach exams load').")
				return nil
			}

			changes := g.Reconcile(ministry.Lookup(records), class)
			a.log.Info("reconciled calendar", zap.String("class", class), zap.Int("changes", len(changes)))

			out := cmd.OutOrStdout()
			if len(changes) == 0 {
				fmt.Fprintln(out, "All placed exams match the timetable.")
			}
			for _, c := range changes {
				mark := formatStats("moved")
				if !c.Moved {
					mark = formatWarn("kept ")
				}
				fmt.Fprintf(out, "  %s %-8s %s -> %s  %s\n", mark, c.SourceID, c.OldDate, c.NewDate, c.Name)
				if c.Conflict != "" {
					fmt.Fprintf(out, "        %s\n", formatWarn(c.Conflict))
				}
			}

			if dryRun {
				fmt.Fprintln(out, formatMuted("Dry run, calendar not saved."))
				return nil
			}
			// Labels may have been refreshed even without moves.
			return a.saveGrid(ctx, g)
		},
	}

	cmd.Flags().StringVar(&classFlag, "class", "", "Class (default: config default_class)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without saving")
	return cmd
}

package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/luach/internal/dateutil"
	"github.com/javiermolinar/luach/internal/grid"
	"github.com/javiermolinar/luach/internal/summary"
)

func (a *App) showCmd() *cobra.Command {
	var classFlag, from, to string
	var verbose bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the calendar for a class",
		Long: `Display the weeks of a date range as one class sees them: its own
events plus those for all classes.

Without --from and --to, the range runs from this week's Sunday to the
end of August, clamped to the calendar.

Example:
  luach show --class 12B --from 2027-03-01 --to 2027-04-30`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			class, err := a.config.Class(classFlag)
			if err != nil {
				return err
			}

			ctx := context.Background()
			g, err := a.loadGrid(ctx)
			if err != nil {
				return err
			}

			start, end, err := a.dateRange(g, from, to)
			if err != nil {
				return err
			}
			s := summary.Summarize(g, class, start, end)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "=== %s  %s  %s - %s ===\n\n",
				formatHeader(g.YearLabel), class, dateutil.FormatDMY(s.Start), dateutil.FormatDMY(s.End))
			if len(s.Weeks) == 0 {
				fmt.Fprintln(out, "No weeks in range.")
				return nil
			}

			opts := PrintOpts{Class: class, Verbose: verbose}
			maxTextWidth := opts.CalcMaxTextWidth(50)
			for _, wi := range s.Weeks {
				PrintWeek(out, g, wi, opts, maxTextWidth)
			}
			PrintCounts(out, s.Counts)
			return nil
		},
	}

	addRangeFlags(cmd, &classFlag, &from, &to)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show empty weeks and full event texts")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func addRangeFlags(cmd *cobra.Command, classFlag, from, to *string) {
	cmd.Flags().StringVar(classFlag, "class", "", "Class (default: config default_class)")
	cmd.Flags().StringVar(from, "from", "", "First date (YYYY-MM-DD, default: this week's Sunday)")
	cmd.Flags().StringVar(to, "to", "", "Last date (YYYY-MM-DD, default: August 31)")
}

// dateRange parses the --from/--to flags, defaulting each missing bound.
func (a *App) dateRange(g *grid.Grid, from, to string) (time.Time, time.Time, error) {
	defFrom, defTo := grid.DefaultRange(g, a.today())
	start, end := defFrom, defTo

	var err error
	if from != "" {
		if start, err = dateutil.ParseDate(from); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
		}
	}
	if to != "" {
		if end, err = dateutil.ParseDate(to); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, dateutil.ErrEndDateBeforeStart
	}
	return start, end, nil
}

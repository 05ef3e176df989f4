package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/luach/internal/dateutil"
	"github.com/javiermolinar/luach/internal/grid"
	"github.com/javiermolinar/luach/internal/ministry"
)

func (a *App) newYearCmd() *cobra.Command {
	var year int
	var withExams bool
	var classFlag string

	cmd := &cobra.Command{
		Use:   "new-year",
		Short: "Create the calendar for a new academic year",
		Long: `Create a fresh calendar for the academic year starting in September
of --year, replacing the school's current calendar.

Holidays, vacations and weekly readings loaded with 'luach holidays load'
are applied for both civil years the academic year spans. With
--with-exams, the stored ministry timetable is shifted to the new year
and placed for --class.

Examples:
  luach new-year --year 2026
  luach new-year --year 2026 --with-exams --class 12B`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if year == 0 {
				year = a.today().Year()
			}
			if year < 2000 || year > 2100 {
				return fmt.Errorf("year out of range: %d", year)
			}
			ctx := context.Background()
			out := cmd.OutOrStdout()

			sets, err := a.holidaySets(ctx, year)
			if err != nil {
				return err
			}

			g := grid.Build(year, grid.BuildOptions{
				Holidays: sets,
				Classes:  a.config.School.Classes,
				Logger:   a.log,
			})

			placed := 0
			if withExams {
				class, err := a.config.Class(classFlag)
				if err != nil {
					return err
				}
				placed, err = a.placeShiftedExams(ctx, g, year, class)
				if err != nil {
					return err
				}
			}

			if err := a.saveGrid(ctx, g); err != nil {
				return err
			}

			first, last, _ := g.Span()
			fmt.Fprintf(out, "Created %s: %d weeks, %s to %s\n",
				formatHeader(g.YearLabel), len(g.Weeks), dateutil.FormatDMY(first), dateutil.FormatDMY(last))
			if len(sets) == 0 {
				fmt.Fprintln(out, formatWarn("No holidays loaded for this year (see 'luach holidays load')."))
			}
			if withExams {
				fmt.Fprintf(out, "Placed %s exams.\n", formatStats(fmt.Sprint(placed)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Civil year the academic year starts in (default: current year)")
	cmd.Flags().BoolVar(&withExams, "with-exams", false, "Place the stored exam timetable, shifted to the new year")
	cmd.Flags().StringVar(&classFlag, "class", "", "Class the exams are placed for (default: config default_class)")
	return cmd
}

// holidaySets returns the stored sets for both civil years of the academic year.
func (a *App) holidaySets(ctx context.Context, startYear int) ([]grid.HolidaySet, error) {
	var sets []grid.HolidaySet
	for _, y := range []int{startYear, startYear + 1} {
		set, err := a.repo.GetHolidaySet(ctx, y)
		if err != nil {
			return nil, fmt.Errorf("fetching holidays for %d: %w", y, err)
		}
		if set != nil {
			sets = append(sets, *set)
		}
	}
	return sets, nil
}

// placeShiftedExams moves the stored timetable into the summer of the new
// academic year and places every record that lands on the grid.
func (a *App) placeShiftedExams(ctx context.Context, g *grid.Grid, startYear int, class string) (int, error) {
	records, err := a.repo.ListExams(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching exams: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}

	offset := 0
	for _, rec := range records {
		if d, err := dateutil.ParseDate(rec.Date); err == nil {
			offset = startYear + 1 - d.Year()
			break
		}
	}

	placed := 0
	for _, rec := range ministry.ShiftYears(records, offset) {
		if _, err := g.Place(rec, class); err != nil {
			if !errors.Is(err, grid.ErrOutOfRange) {
				a.log.Warn("skipping exam", zap.String("code", rec.ID), zap.Error(err))
			}
			continue
		}
		placed++
	}
	a.log.Info("placed exams", zap.Int("placed", placed), zap.Int("offset", offset), zap.String("class", class))
	return placed, nil
}

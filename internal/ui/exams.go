package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/luach/internal/dateutil"
	"github.com/javiermolinar/luach/internal/grid"
	"github.com/javiermolinar/luach/internal/ministry"
)

func (a *App) examsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exams",
		Short: "Manage the ministry exam timetable",
	}
	cmd.AddCommand(a.examsLoadCmd())
	cmd.AddCommand(a.examsSearchCmd())
	return cmd
}

func (a *App) examsLoadCmd() *cobra.Command {
	var moed string
	var source string

	cmd := &cobra.Command{
		Use:   "load <file.xlsx>",
		Short: "Replace the stored timetable with a ministry spreadsheet",
		Long: `Read the ministry timetable spreadsheet and replace the stored one.

Columns are: date, code, name, start time, end time, below two header
rows. Rows without a code, a name or a readable date are skipped.

Examples:
  luach exams load bagrut-summer.xlsx
  luach exams load bagrut-winter.xlsx --moed "מועד חורף 2027"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening timetable: %w", err)
			}
			defer f.Close()

			records, err := ministry.ReadTimetable(f)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("no exams found in %s", path)
			}

			if moed == "" {
				year := a.today().Year()
				if d, err := dateutil.ParseDate(records[0].Date); err == nil {
					year = d.Year()
				}
				if moed, err = ministry.MoedLabel(a.config.Exams.Season, year); err != nil {
					return err
				}
			}
			if source == "" {
				source = a.config.Exams.Source
			}

			meta := ministry.Meta(moed, source, len(records), a.today())
			if err := a.repo.SaveExams(context.Background(), records, meta); err != nil {
				return fmt.Errorf("storing timetable: %w", err)
			}
			a.log.Info("stored timetable", zap.String("moed", moed), zap.Int("count", len(records)))

			fmt.Fprintf(cmd.OutOrStdout(), "Stored %s exams for %s.\n",
				formatStats(fmt.Sprint(len(records))), formatHeader(moed))
			return nil
		},
	}

	cmd.Flags().StringVar(&moed, "moed", "", "Session label (default: from config season and exam year)")
	cmd.Flags().StringVar(&source, "source", "", "Source recorded with the timetable (default: config source)")
	return cmd
}

func (a *App) examsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <code or name>",
		Short: "Search the stored timetable",
		Long: `Search the stored timetable by exact exam code or by part of the
exam name.

Examples:
  luach exams search 35381
  luach exams search מתמטיקה`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()
			out := cmd.OutOrStdout()

			records, err := a.repo.ListExams(ctx)
			if err != nil {
				return fmt.Errorf("fetching exams: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No timetable stored (see 'luach exams load').")
				return nil
			}

			meta, err := a.repo.ExamMeta(ctx)
			if err != nil {
				return fmt.Errorf("fetching timetable info: %w", err)
			}
			fmt.Fprintln(out, formatMuted(fmt.Sprintf("%s, %s, updated %s", meta.Moed, meta.Source, meta.LastUpdated)))

			matches := ministry.Search(records, strings.Join(args, " "))
			if len(matches) == 0 {
				fmt.Fprintln(out, "No matching exams.")
				return nil
			}
			for _, rec := range matches {
				printRecord(out, rec)
			}
			return nil
		},
	}
}

func printRecord(out io.Writer, rec grid.ExternalRecord) {
	date := rec.Date
	if d, err := dateutil.ParseDate(rec.Date); err == nil {
		date = dateutil.FormatDMY(d)
	}
	times := ""
	if rec.StartTime != "" {
		times = rec.StartTime
		if rec.EndTime != "" {
			times += "-" + rec.EndTime
		}
	}
	fmt.Fprintf(out, "  %-8s %s  %-11s %s\n", rec.ID, date, times, rec.Name)
}

func (a *App) placeCmd() *cobra.Command {
	var classFlag string

	cmd := &cobra.Command{
		Use:   "place <code>...",
		Short: "Place exams from the stored timetable on the calendar",
		Long: `Place one or more exams from the stored timetable on their date for
a class. A trip on the same day is reported but does not block the exam.

Example:
  luach place 35381 35382 --class 12B`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := a.config.Class(classFlag)
			if err != nil {
				return err
			}
			ctx := context.Background()
			g, err := a.loadGrid(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			placed := 0
			for _, code := range args {
				rec, err := a.repo.GetExam(ctx, code)
				if err != nil {
					return fmt.Errorf("fetching exam %s: %w", code, err)
				}
				if rec == nil {
					fmt.Fprintf(out, "%s %s: not in the timetable\n", formatWarn("!"), code)
					continue
				}

				warning, err := g.Place(*rec, class)
				switch {
				case errors.Is(err, grid.ErrAlreadyImported):
					fmt.Fprintf(out, "%s %s: already on the calendar for %s\n", formatMuted("-"), code, class)
					continue
				case err != nil:
					fmt.Fprintf(out, "%s %s: %v\n", formatWarn("!"), code, err)
					continue
				}

				placed++
				fmt.Fprintf(out, "%s %s %s\n", formatStats("+"), code, rec.Name)
				if warning != "" {
					fmt.Fprintf(out, "  %s\n", formatWarn(warning))
				}
			}

			if placed == 0 {
				return nil
			}
			return a.saveGrid(ctx, g)
		},
	}

	cmd.Flags().StringVar(&classFlag, "class", "", "Class (default: config default_class)")
	return cmd
}

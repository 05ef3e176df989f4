package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/luach/internal/dateutil"
	"github.com/javiermolinar/luach/internal/export"
	"github.com/javiermolinar/luach/internal/summary"
)

func (a *App) exportCmd() *cobra.Command {
	var classFlag string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the calendar to an Excel workbook",
		Long: `Write the whole year as one class sees it to an Excel workbook: one
row per week, one column per day, cells coloured by the most important
event of the day.

Example:
  luach export --class 12B --out ~/calendar-12B.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			class, err := a.config.Class(classFlag)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = fmt.Sprintf("luach-%s.xlsx", class)
			}
			path, err := resolvePath(outPath)
			if err != nil {
				return err
			}

			g, err := a.loadGrid(context.Background())
			if err != nil {
				return err
			}

			f, err := export.Excel(g, class)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := export.WriteFile(path, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d weeks to %s\n", len(g.Weeks), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&classFlag, "class", "", "Class (default: config default_class)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: luach-<class>.xlsx)")
	return cmd
}

func (a *App) shareCmd() *cobra.Command {
	var classFlag, from, to, outPath string
	var copyText bool

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print the calendar as a message for parents and students",
		Long: `Render the weeks of a date range as a plain-text message ready to
paste into a messaging app. Weeks without events are left out.

Examples:
  luach share --class 12B --copy
  luach share --class 12B --from 2027-05-01 --to 2027-06-30 --out may-june.txt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			class, err := a.config.Class(classFlag)
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			opts := summary.BuildOptions{
				SchoolID: a.config.School.ID,
				Class:    class,
				Now:      a.now,
			}
			if opts.From, err = optionalDate(from); err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			if opts.To, err = optionalDate(to); err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			s, err := summary.Build(context.Background(), a.repo, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, s.Text)

			if outPath != "" {
				path, err := resolvePath(outPath)
				if err != nil {
					return err
				}
				if err := export.WriteText(path, s.Text+"\n"); err != nil {
					return err
				}
				fmt.Fprintln(out, formatMuted("Saved to "+path))
			}
			if copyText {
				if err := clipboard.WriteAll(s.Text); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(out, formatStats("Copied to clipboard."))
			}
			return nil
		},
	}

	addRangeFlags(cmd, &classFlag, &from, &to)
	cmd.Flags().BoolVar(&copyText, "copy", false, "Copy the message to the clipboard")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Also write the message to a file")
	return cmd
}

func optionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return dateutil.ParseDate(s)
}

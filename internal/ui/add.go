package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/luach/internal/dateutil"
	"github.com/javiermolinar/luach/internal/grid"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date      string
		typeName  string
		classFlag string
		start     string
		end       string
	)

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add an event to the calendar",
		Long: `Add an event on a date. Types are official_exam, mock_exam, trip,
vacation, holiday and general. Times are appended to the text.

Example:
  luach add "Trip to the Galilee" --date=2027-03-15 --type=trip --class=11A
  luach add "Mock exam in math" --date=2027-03-17 --type=mock_exam --start=09:00 --end=12:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateutil.ParseDate(date)
			if err != nil {
				return err
			}
			typ, err := grid.ParseEventType(typeName)
			if err != nil {
				return err
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

			slot, err := g.AddEvent(d, grid.Event{
				Text:      args[0],
				Type:      typ,
				Class:     class,
				StartTime: start,
				EndTime:   end,
			})
			if err != nil {
				return err
			}
			if err := a.saveGrid(ctx, g); err != nil {
				return err
			}

			events := g.Events(slot)
			ev := events[len(events)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s [%s] %s %s, week %s\n",
				formatEvent(ev.Type, ev.Text),
				ev.Class,
				slot.Day.Name(),
				dateutil.FormatDMY(d),
				g.Weeks[slot.Week].DateRange,
			)
			if ev.Type != grid.TypeTrip {
				if conflicts := g.Conflicts(slot, ev.Class); len(conflicts) > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), formatWarn("  same day as: "+strings.Join(conflicts, ", ")))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Event date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&typeName, "type", string(grid.TypeGeneral), "Event type")
	cmd.Flags().StringVar(&classFlag, "class", "", "Class (default: config default_class)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")

	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func (a *App) removeCmd() *cobra.Command {
	var date string
	var index int

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove an event from the calendar",
		Long: `Remove the event at --index from a day. Without --index, the day's
events are listed with their indices.

Example:
  luach remove --date=2027-03-15
  luach remove --date=2027-03-15 --index=1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := dateutil.ParseDate(date)
			if err != nil {
				return err
			}

			ctx := context.Background()
			g, err := a.loadGrid(ctx)
			if err != nil {
				return err
			}
			slot, ok := g.Locate(d)
			if !ok {
				return grid.ErrOutOfRange
			}
			out := cmd.OutOrStdout()

			if index < 0 {
				events := g.Events(slot)
				if len(events) == 0 {
					fmt.Fprintf(out, "No events on %s.\n", dateutil.FormatDMY(d))
					return nil
				}
				for i, ev := range events {
					fmt.Fprintf(out, "  [%d] %s %s\n", i, formatEvent(ev.Type, ev.Text), formatMuted(ev.Class))
				}
				return nil
			}

			ev, err := g.RemoveEvent(slot, index)
			if err != nil {
				return err
			}
			if err := a.saveGrid(ctx, g); err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed %s from %s\n", ev.Text, dateutil.FormatDMY(d))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Event date (YYYY-MM-DD, required)")
	cmd.Flags().IntVar(&index, "index", -1, "Position of the event in the day (see the listing)")

	_ = cmd.MarkFlagRequired("date")

	return cmd
}

package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/luach/internal/dateutil"
	"github.com/javiermolinar/luach/internal/grid"
)

// PrintOpts controls how weeks are printed.
type PrintOpts struct {
	Class        string
	Verbose      bool // Show full event texts
	MaxTextWidth int  // Maximum text width (0 = auto)
}

// CalcMaxTextWidth calculates the maximum event text width based on options.
func (o PrintOpts) CalcMaxTextWidth(defaultWidth int) int {
	if o.MaxTextWidth > 0 {
		return o.MaxTextWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// "    שלישי  30/03  " is ~18 columns
	available := termWidth() - 18
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintWeek prints one week's visible events. Weeks with nothing visible
// print their header only when verbose.
func PrintWeek(out io.Writer, g *grid.Grid, wi int, opts PrintOpts, maxTextWidth int) {
	w := g.Weeks[wi]

	type row struct {
		dk grid.DayKey
		ev *grid.Event
	}
	var rows []row
	for _, dk := range grid.DayKeys {
		for _, ev := range g.Visible(grid.Slot{Week: wi, Day: dk}, opts.Class) {
			rows = append(rows, row{dk, ev})
		}
	}
	if len(rows) == 0 && !opts.Verbose {
		return
	}

	header := formatHeader(fmt.Sprintf("שבוע %s", w.DateRange))
	if p := g.Parasha[w.StartKey()]; p != "" {
		header += "  " + formatMuted(grid.ParashaLabel(p))
	}
	fmt.Fprintln(out, header)

	for _, r := range rows {
		fmt.Fprintf(out, "    %-6s %s  %s\n",
			r.dk.Name(),
			dateutil.FormatDM(w.DateOf(r.dk)),
			formatEvent(r.ev.Type, truncate(r.ev.Text, maxTextWidth)),
		)
	}
	fmt.Fprintln(out)
}

// PrintCounts prints the per-type totals in priority order.
func PrintCounts(out io.Writer, counts map[grid.EventType]int) {
	var parts []string
	for _, t := range grid.EventTypes {
		if n := counts[t]; n > 0 {
			parts = append(parts, formatEvent(t, fmt.Sprintf("%s: %d", t.Label(), n)))
		}
	}
	if len(parts) == 0 {
		fmt.Fprintln(out, formatMuted("No events in range."))
		return
	}
	fmt.Fprintln(out, strings.Join(parts, "  |  "))
}

// truncate shortens s to width runes.
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

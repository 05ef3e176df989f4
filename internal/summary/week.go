// Package summary provides shared range summary utilities: event counts and
// the plain-text message shared with parents and students.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/luach/internal/dateutil"
	"github.com/javiermolinar/luach/internal/grid"
)

// ErrNoWeeks is returned when the requested range touches no week of the grid.
var ErrNoWeeks = errors.New("no weeks in range")

// RangeSummary holds the weeks of a date range as seen by one class.
type RangeSummary struct {
	Class  string
	Start  time.Time
	End    time.Time
	Weeks  []int
	Counts map[grid.EventType]int
	Text   string
}

// BuildOptions configures the repository-backed summary builder.
type BuildOptions struct {
	SchoolID string
	Class    string
	// From and To bound the range. Zero values fall back to grid.DefaultRange.
	From time.Time
	To   time.Time
	// Now is used for the default range. Defaults to time.Now.
	Now func() time.Time
}

// Summarize builds the summary of [from, to] for class.
func Summarize(g *grid.Grid, class string, from, to time.Time) *RangeSummary {
	weeks := g.WeeksBetween(from, to)
	return &RangeSummary{
		Class:  class,
		Start:  dateutil.TruncateToDay(from),
		End:    dateutil.TruncateToDay(to),
		Weeks:  weeks,
		Counts: Count(g, class, weeks),
		Text:   ShareText(g, class, weeks),
	}
}

// Build loads a school's grid and summarizes the requested range.
func Build(ctx context.Context, repo grid.Repository, opts BuildOptions) (*RangeSummary, error) {
	g, err := repo.GetGrid(ctx, opts.SchoolID)
	if err != nil {
		return nil, fmt.Errorf("fetching grid: %w", err)
	}

	from, to := opts.From, opts.To
	if from.IsZero() || to.IsZero() {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		defFrom, defTo := grid.DefaultRange(g, now())
		if from.IsZero() {
			from = defFrom
		}
		if to.IsZero() {
			to = defTo
		}
	}

	s := Summarize(g, opts.Class, from, to)
	if len(s.Weeks) == 0 {
		return nil, fmt.Errorf("%w: %s to %s", ErrNoWeeks, dateutil.Format(from), dateutil.Format(to))
	}
	return s, nil
}

// Count returns the number of events visible to class per type.
func Count(g *grid.Grid, class string, weeks []int) map[grid.EventType]int {
	counts := make(map[grid.EventType]int)
	for _, wi := range weeks {
		if wi < 0 || wi >= len(g.Weeks) {
			continue
		}
		for _, dk := range grid.DayKeys {
			for _, ev := range g.Visible(grid.Slot{Week: wi, Day: dk}, class) {
				counts[ev.Type]++
			}
		}
	}
	return counts
}

// ShareText renders the weeks as a message for messaging apps. Weeks without
// visible events are left out; the weekly reading alone does not count.
func ShareText(g *grid.Grid, class string, weeks []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*לוח שנה %s - %s*\n", g.YearLabel, class)

	for _, wi := range weeks {
		if wi < 0 || wi >= len(g.Weeks) {
			continue
		}
		w := g.Weeks[wi]

		var lines []string
		for _, dk := range grid.DayKeys {
			date := dateutil.FormatDM(w.DateOf(dk))
			for _, ev := range g.Visible(grid.Slot{Week: wi, Day: dk}, class) {
				lines = append(lines, fmt.Sprintf("  %s %s: %s", dk.Name(), date, ev.Text))
			}
		}
		if len(lines) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n*שבוע %s*\n", w.DateRange)
		if p := g.Parasha[w.StartKey()]; p != "" {
			fmt.Fprintf(&b, "  %s\n", grid.ParashaLabel(p))
		}
		for _, line := range lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

package grid

import (
	"time"

	"github.com/javiermolinar/luach/internal/dateutil"
)

// Visible returns the slot's events shown to class.
func (g *Grid) Visible(slot Slot, class string) []*Event {
	var out []*Event
	for _, ev := range g.Events(slot) {
		if ev.VisibleTo(class) {
			out = append(out, ev)
		}
	}
	return out
}

// WeeksBetween returns the indices of weeks whose span overlaps [from, to].
func (g *Grid) WeeksBetween(from, to time.Time) []int {
	from, to = dateutil.TruncateToDay(from), dateutil.TruncateToDay(to)
	var out []int
	for i, w := range g.Weeks {
		if !w.EndDate().Before(from) && !w.Start.After(to) {
			out = append(out, i)
		}
	}
	return out
}

// DefaultRange returns the range shown when the user picks none: the
// current week's Sunday through the coming August 31, clamped to the grid.
// If the clamp leaves nothing, the whole grid is returned.
func DefaultRange(g *Grid, today time.Time) (from, to time.Time) {
	today = dateutil.TruncateToDay(today)
	from = dateutil.SundayOnOrBefore(today)
	augustYear := today.Year()
	if today.Month() > time.August {
		augustYear++
	}
	to = dateutil.MustDate(augustYear, time.August, 31)

	first, last, ok := g.Span()
	if !ok {
		return from, to
	}
	if from.Before(first) {
		from = first
	}
	if to.After(last) {
		to = last
	}
	if from.After(to) {
		return first, last
	}
	return from, to
}

// Dominant returns the highest-priority type among events, following the
// order of EventTypes. An empty list yields TypeGeneral.
func Dominant(events []*Event) EventType {
	for _, t := range EventTypes {
		for _, ev := range events {
			if ev.Type == t {
				return t
			}
		}
	}
	return TypeGeneral
}

package grid

import (
	"fmt"
	"time"

	"github.com/javiermolinar/luach/internal/dateutil"
)

// Holiday is a single-day non-movable event.
type Holiday struct {
	Date string `json:"date" yaml:"date"`
	Text string `json:"text" yaml:"text"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Vacation is an inclusive range of school days off.
type Vacation struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Text  string `json:"text" yaml:"text"`
}

// HolidaySet holds the holidays and vacations published for one civil year.
type HolidaySet struct {
	Year      int        `json:"year" yaml:"year"`
	Label     string     `json:"label,omitempty" yaml:"label,omitempty"`
	Holidays  []Holiday  `json:"holidays" yaml:"holidays"`
	Vacations []Vacation `json:"school_vacations" yaml:"school_vacations"`

	// Parasha maps a week start date (YYYY-MM-DD) to its weekly reading.
	Parasha map[string]string `json:"parasha,omitempty" yaml:"parasha,omitempty"`
}

// ImportResult reports what ImportHolidays changed.
type ImportResult struct {
	// Added is the number of events appended. Zero means nothing new.
	Added int
	// Skipped lists the malformed records that were dropped.
	Skipped []string
}

// ImportHolidays applies holiday and vacation sets to the grid. Duplicates are
// detected by exact text within a slot, so re-running an import adds nothing.
// Dates outside the grid are ignored; malformed records are skipped.
// Weekly readings fill in weeks that have none yet.
func (g *Grid) ImportHolidays(sets ...HolidaySet) ImportResult {
	var res ImportResult

	for _, set := range sets {
		for start, name := range set.Parasha {
			if g.Parasha == nil {
				g.Parasha = make(map[string]string)
			}
			if _, ok := g.Parasha[start]; !ok && name != "" {
				g.Parasha[start] = name
			}
		}

		for _, h := range set.Holidays {
			date, err := dateutil.ParseDate(h.Date)
			if err != nil {
				res.Skipped = append(res.Skipped, fmt.Sprintf("holiday %q: bad date %q", h.Text, h.Date))
				continue
			}
			typ := TypeHoliday
			if h.Type != "" {
				if parsed, err := ParseEventType(h.Type); err == nil {
					typ = parsed
				}
			}
			slot, ok := g.Locate(date)
			if !ok {
				continue
			}
			if g.addUniqueText(slot, h.Text, typ) {
				res.Added++
			}
		}

		for _, v := range set.Vacations {
			r, err := dateutil.NewDateRange(v.Start, v.End)
			if err != nil {
				res.Skipped = append(res.Skipped, fmt.Sprintf("vacation %q: %v", v.Text, err))
				continue
			}
			dateutil.EachDay(r.Start, r.End, func(d time.Time) bool {
				if slot, ok := g.Locate(d); ok && g.addUniqueText(slot, v.Text, TypeVacation) {
					res.Added++
				}
				return true
			})
		}
	}

	return res
}

// addUniqueText appends an all-classes event unless the slot already holds one with the same text.
func (g *Grid) addUniqueText(slot Slot, text string, typ EventType) bool {
	for _, ev := range g.Events(slot) {
		if ev.Text == text {
			return false
		}
	}
	g.appendEvent(slot, &Event{Text: text, Type: typ, Class: ClassAll})
	return true
}

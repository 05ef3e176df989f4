package grid

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/javiermolinar/luach/internal/dateutil"
)

// DayKey identifies one of the seven day slots of a week.
type DayKey string

const (
	Sunday    DayKey = "sunday"
	Monday    DayKey = "monday"
	Tuesday   DayKey = "tuesday"
	Wednesday DayKey = "wednesday"
	Thursday  DayKey = "thursday"
	Friday    DayKey = "friday"
	Shabbat   DayKey = "shabbat"
)

// DayKeys holds the day keys in scan order; the index is the offset from the week start.
var DayKeys = [7]DayKey{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Shabbat}

// Offset returns the number of days between the week start and this key, or -1.
func (k DayKey) Offset() int {
	for i, dk := range DayKeys {
		if dk == k {
			return i
		}
	}
	return -1
}

// ParseDayKey validates a day key string.
func ParseDayKey(s string) (DayKey, error) {
	k := DayKey(s)
	if k.Offset() < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDayKey, s)
	}
	return k, nil
}

// Week holds seven day slots starting from a Sunday.
type Week struct {
	DateRange string
	Start     time.Time
	Days      map[DayKey][]*Event
}

// NewWeek creates an empty week anchored at start.
func NewWeek(start time.Time) *Week {
	start = dateutil.TruncateToDay(start)
	w := &Week{
		DateRange: rangeLabel(start, start.AddDate(0, 0, 6)),
		Start:     start,
		Days:      make(map[DayKey][]*Event, len(DayKeys)),
	}
	for _, dk := range DayKeys {
		w.Days[dk] = []*Event{}
	}
	return w
}

// EndDate returns the last day of the week.
func (w *Week) EndDate() time.Time {
	return w.Start.AddDate(0, 0, 6)
}

// StartKey returns the week start as YYYY-MM-DD, the key of Grid.Parasha.
func (w *Week) StartKey() string {
	return dateutil.Format(w.Start)
}

// DateOf returns the calendar date of a day key within this week.
func (w *Week) DateOf(dk DayKey) time.Time {
	return w.Start.AddDate(0, 0, dk.Offset())
}

type weekJSON struct {
	DateRange string              `json:"date_range_label"`
	StartDate string              `json:"start_date"`
	Days      map[DayKey][]*Event `json:"days"`
}

// MarshalJSON renders the persisted week shape.
func (w *Week) MarshalJSON() ([]byte, error) {
	return json.Marshal(weekJSON{
		DateRange: w.DateRange,
		StartDate: w.StartKey(),
		Days:      w.Days,
	})
}

// UnmarshalJSON decodes the persisted week shape, filling any missing day keys.
func (w *Week) UnmarshalJSON(b []byte) error {
	var raw weekJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	start, err := dateutil.ParseDate(raw.StartDate)
	if err != nil {
		return fmt.Errorf("week start %q: %w", raw.StartDate, err)
	}
	for dk := range raw.Days {
		if dk.Offset() < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidDayKey, dk)
		}
	}
	w.DateRange = raw.DateRange
	w.Start = start
	w.Days = raw.Days
	if w.Days == nil {
		w.Days = make(map[DayKey][]*Event, len(DayKeys))
	}
	for _, dk := range DayKeys {
		if w.Days[dk] == nil {
			w.Days[dk] = []*Event{}
		}
	}
	if w.DateRange == "" {
		w.DateRange = rangeLabel(start, w.EndDate())
	}
	return nil
}

// Slot is a (week, day) coordinate on the grid.
type Slot struct {
	Week int
	Day  DayKey
}

// Grid is one academic year of contiguous weeks.
type Grid struct {
	YearLabel string            `json:"year_label"`
	Classes   []string          `json:"classes,omitempty"`
	Parasha   map[string]string `json:"parasha,omitempty"`
	Weeks     []*Week           `json:"weeks"`
}

// DateOf returns the calendar date of a slot.
func (g *Grid) DateOf(s Slot) time.Time {
	return g.Weeks[s.Week].DateOf(s.Day)
}

// Events returns the live event list of a slot.
func (g *Grid) Events(s Slot) []*Event {
	return g.Weeks[s.Week].Days[s.Day]
}

func (g *Grid) appendEvent(s Slot, ev *Event) {
	days := g.Weeks[s.Week].Days
	days[s.Day] = append(days[s.Day], ev)
}

// removeEvent drops ev from the slot by identity. Returns false if absent.
func (g *Grid) removeEvent(s Slot, ev *Event) bool {
	days := g.Weeks[s.Week].Days
	list := days[s.Day]
	for i, e := range list {
		if e == ev {
			days[s.Day] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Locate maps a calendar date to its slot. The boolean is false when the
// date falls before, after, or between the grid's weeks.
func (g *Grid) Locate(date time.Time) (Slot, bool) {
	date = dateutil.TruncateToDay(date)
	// First week whose last day is on or after date.
	i := sort.Search(len(g.Weeks), func(i int) bool {
		return !g.Weeks[i].EndDate().Before(date)
	})
	if i == len(g.Weeks) {
		return Slot{}, false
	}
	w := g.Weeks[i]
	for _, dk := range DayKeys {
		if dateutil.SameDay(w.DateOf(dk), date) {
			return Slot{Week: i, Day: dk}, true
		}
	}
	return Slot{}, false
}

// Span returns the first and last calendar dates covered by the grid.
func (g *Grid) Span() (first, last time.Time, ok bool) {
	if len(g.Weeks) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return g.Weeks[0].Start, g.Weeks[len(g.Weeks)-1].EndDate(), true
}

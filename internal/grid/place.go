package grid

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/luach/internal/dateutil"
)

// Conflicts returns the texts of locked-type events in the slot that apply to class.
// The result is advisory; it never blocks a placement.
func (g *Grid) Conflicts(slot Slot, class string) []string {
	var out []string
	for _, ev := range g.Events(slot) {
		if ev.Type.Locked() && ev.VisibleTo(class) {
			out = append(out, ev.Text)
		}
	}
	return out
}

// Place imports one timetable record into the grid for class.
//
// On success the returned string is a conflict warning, empty when the slot
// holds no locked events. Failures are ErrInvalidDate, ErrOutOfRange and
// ErrAlreadyImported; the grid is untouched in each case.
func (g *Grid) Place(rec ExternalRecord, class string) (string, error) {
	date, err := dateutil.ParseDate(rec.Date)
	if err != nil {
		return "", ErrInvalidDate
	}

	slot, ok := g.Locate(date)
	if !ok {
		return "", ErrOutOfRange
	}

	var warning string
	if conflicts := g.Conflicts(slot, class); len(conflicts) > 0 {
		warning = fmt.Sprintf("conflicts with existing event: (%s)", strings.Join(conflicts, ", "))
	}

	for _, ev := range g.Events(slot) {
		if ev.SourceID == rec.ID && ev.Class == class {
			return "", ErrAlreadyImported
		}
	}

	start, end := recordTimes(rec)
	g.appendEvent(slot, &Event{
		Text:      ExamLabel(rec.Name, rec.ID, start, end),
		Type:      TypeOfficialExam,
		Class:     class,
		SourceID:  rec.ID,
		StartTime: start,
		EndTime:   end,
	})
	return warning, nil
}

// recordTimes normalizes a record's times; anything unparsable counts as absent.
func recordTimes(rec ExternalRecord) (start, end string) {
	start, _ = dateutil.NormalizeTime(strings.TrimSpace(rec.StartTime))
	end, _ = dateutil.NormalizeTime(strings.TrimSpace(rec.EndTime))
	return start, end
}

// AddEvent places a user-authored event on date. Exams with times get the
// times appended to their text.
func (g *Grid) AddEvent(date time.Time, ev Event) (Slot, error) {
	ev.Text = strings.TrimSpace(ev.Text)
	if ev.Text == "" {
		return Slot{}, ErrEmptyText
	}
	if !ev.Type.Valid() {
		return Slot{}, fmt.Errorf("%w: %q", ErrInvalidType, ev.Type)
	}
	if ev.Class == "" {
		ev.Class = ClassAll
	}

	slot, ok := g.Locate(date)
	if !ok {
		return Slot{}, ErrOutOfRange
	}

	ev.StartTime, _ = dateutil.NormalizeTime(ev.StartTime)
	ev.EndTime, _ = dateutil.NormalizeTime(ev.EndTime)
	switch {
	case ev.StartTime != "" && ev.EndTime != "":
		ev.Text = fmt.Sprintf("%s %s-%s", ev.Text, ev.StartTime, ev.EndTime)
	case ev.StartTime != "":
		ev.Text = fmt.Sprintf("%s %s", ev.Text, ev.StartTime)
	}

	g.appendEvent(slot, &ev)
	return slot, nil
}

// RemoveEvent deletes the event at position index of the slot.
func (g *Grid) RemoveEvent(slot Slot, index int) (*Event, error) {
	if slot.Week < 0 || slot.Week >= len(g.Weeks) || slot.Day.Offset() < 0 {
		return nil, ErrEventNotFound
	}
	list := g.Events(slot)
	if index < 0 || index >= len(list) {
		return nil, ErrEventNotFound
	}
	ev := list[index]
	g.removeEvent(slot, ev)
	return ev, nil
}

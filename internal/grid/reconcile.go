package grid

import (
	"fmt"
	"slices"
	"strings"

	"github.com/javiermolinar/luach/internal/dateutil"
)

// NoteOutOfRange is the conflict note of a move whose target lies outside the grid.
const NoteOutOfRange = "target date outside grid range"

// Reconcile re-aligns imported exams visible to class with the current
// timetable. Labels and times are refreshed in place; events whose date
// changed are moved to their new slot. Reports come back in scan order
// (week, day, event). A move that cannot land stays where it is.
func (g *Grid) Reconcile(records map[string]ExternalRecord, class string) []ChangeReport {
	var changes []ChangeReport

	for wi, w := range g.Weeks {
		for _, dk := range DayKeys {
			from := Slot{Week: wi, Day: dk}
			current := w.DateOf(dk)

			// Moves mutate the live list, so walk a copy.
			for _, ev := range slices.Clone(w.Days[dk]) {
				if !ev.Imported() || !ev.VisibleTo(class) {
					continue
				}
				rec, ok := records[ev.SourceID]
				if !ok {
					continue
				}

				start, end := recordTimes(rec)
				ev.Text = ExamLabel(rec.Name, rec.ID, start, end)
				ev.StartTime = start
				ev.EndTime = end

				target, err := dateutil.ParseDate(rec.Date)
				if err != nil || dateutil.SameDay(current, target) {
					continue
				}

				report := ChangeReport{
					SourceID: ev.SourceID,
					Name:     rec.Name,
					OldDate:  dateutil.FormatDMY(current),
					NewDate:  dateutil.FormatDMY(target),
				}

				to, ok := g.Locate(target)
				if !ok {
					report.Conflict = NoteOutOfRange
					changes = append(changes, report)
					continue
				}

				if conflicts := g.Conflicts(to, class); len(conflicts) > 0 {
					report.Conflict = fmt.Sprintf("conflicts with: %s", strings.Join(conflicts, ", "))
				}
				g.removeEvent(from, ev)
				g.appendEvent(to, ev)
				report.Moved = true
				changes = append(changes, report)
			}
		}
	}

	return changes
}

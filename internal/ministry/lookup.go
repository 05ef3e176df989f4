package ministry

import (
	"strings"
	"time"

	"github.com/javiermolinar/luach/internal/dateutil"
	"github.com/javiermolinar/luach/internal/grid"
)

// Lookup indexes records by id. Later duplicates win.
func Lookup(records []grid.ExternalRecord) map[string]grid.ExternalRecord {
	out := make(map[string]grid.ExternalRecord, len(records))
	for _, rec := range records {
		out[rec.ID] = rec
	}
	return out
}

// Search returns the records whose code equals query or whose name contains
// it, ignoring case. An empty query matches nothing.
func Search(records []grid.ExternalRecord, query string) []grid.ExternalRecord {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)

	var out []grid.ExternalRecord
	for _, rec := range records {
		if rec.ID == query || strings.Contains(strings.ToLower(rec.Name), needle) {
			out = append(out, rec)
		}
	}
	return out
}

// ShiftYears moves every record date by offset years, used when rolling a
// timetable into the next academic year. February 29 becomes February 28 in
// non-leap years. Records with malformed dates are dropped.
func ShiftYears(records []grid.ExternalRecord, offset int) []grid.ExternalRecord {
	out := make([]grid.ExternalRecord, 0, len(records))
	for _, rec := range records {
		d, err := dateutil.ParseDate(rec.Date)
		if err != nil {
			continue
		}
		year, month, day := d.Year()+offset, d.Month(), d.Day()
		if month == time.February && day == 29 && !isLeap(year) {
			day = 28
		}
		rec.Date = dateutil.Format(dateutil.MustDate(year, month, day))
		out = append(out, rec)
	}
	return out
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

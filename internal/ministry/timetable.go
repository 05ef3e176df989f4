// Package ministry reads the exam timetable published by the education
// authority and provides the lookups used to place and reconcile exams.
package ministry

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/javiermolinar/luach/internal/dateutil"
	"github.com/javiermolinar/luach/internal/grid"
)

// ErrNoSheet is returned when the workbook has no readable sheet.
var ErrNoSheet = errors.New("workbook has no sheets")

// ErrUnknownSeason is returned by MoedLabel for anything but summer or winter.
var ErrUnknownSeason = errors.New("season must be summer or winter")

// The published sheet has two header rows; data starts on row 3.
const firstDataRow = 2

// Column positions in the published sheet.
const (
	colDate = iota
	colCode
	colName
	colStart
	colEnd
)

// Alternative date layouts seen in the published files.
var dateLayouts = []string{
	dateutil.Layout,
	"02/01/2006",
	"01-02-06",
	"2006-01-02 15:04:05",
}

// ReadTimetable parses the authority's timetable workbook. Rows missing a
// date, code or name are skipped, as are rows whose date cannot be read.
// Records come back sorted by date then code.
func ReadTimetable(r io.Reader) ([]grid.ExternalRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoSheet
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	var records []grid.ExternalRecord
	for i := firstDataRow; i < len(rows); i++ {
		rec, ok := parseRow(rows[i])
		if ok {
			records = append(records, rec)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

func parseRow(row []string) (grid.ExternalRecord, bool) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	rawDate, code, name := cell(colDate), cell(colCode), cell(colName)
	if rawDate == "" || code == "" || name == "" {
		return grid.ExternalRecord{}, false
	}
	date, ok := parseCellDate(rawDate)
	if !ok {
		return grid.ExternalRecord{}, false
	}

	return grid.ExternalRecord{
		ID:        normalizeCode(code),
		Name:      name,
		Date:      dateutil.Format(date),
		StartTime: parseCellTime(cell(colStart)),
		EndTime:   parseCellTime(cell(colEnd)),
	}, true
}

// parseCellDate accepts text dates and Excel serial numbers.
func parseCellDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateutil.TruncateToDay(t), true
		}
	}
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial < 1 {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return dateutil.TruncateToDay(t), true
}

// parseCellTime returns "HH:MM", or "" if the cell holds no usable time.
// Numeric cells are read as a fraction of a day.
func parseCellTime(s string) string {
	if s == "" {
		return ""
	}
	if hm, err := dateutil.NormalizeTime(s); err == nil {
		return hm
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return ""
	}
	_, frac := math.Modf(v)
	minutes := int(math.Round(frac * 24 * 60))
	if minutes >= 24*60 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// normalizeCode collapses numeric codes such as "35381.0" to "35381".
func normalizeCode(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != math.Trunc(v) || math.IsInf(v, 0) {
		return s
	}
	return strconv.FormatInt(int64(v), 10)
}

// MoedLabel names an exam session, e.g. "מועד קיץ 2027".
func MoedLabel(season string, year int) (string, error) {
	switch season {
	case "summer":
		return fmt.Sprintf("מועד קיץ %d", year), nil
	case "winter":
		return fmt.Sprintf("מועד חורף %d", year), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSeason, season)
	}
}

// Meta describes a freshly loaded timetable batch.
func Meta(moed, source string, count int, now time.Time) grid.TimetableMeta {
	return grid.TimetableMeta{
		Moed:        moed,
		Source:      source,
		LastUpdated: dateutil.Format(now),
		Count:       count,
	}
}

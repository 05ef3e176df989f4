// Package dateutil provides date parsing and validation utilities.
package dateutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
	ErrInvalidTimeFormat  = errors.New("time must be in HH:MM format")
)

// Layout is the canonical calendar date layout.
const Layout = "2006-01-02"

// DateRange represents a validated date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// endDate can be empty (defaults to startDate). Both must be in YYYY-MM-DD format.
// Returns an error if endDate is before startDate.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// Contains reports whether d falls inside the range (inclusive).
func (r *DateRange) Contains(d time.Time) bool {
	d = TruncateToDay(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// ParseDate parses a date string in YYYY-MM-DD format into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// MustDate builds a UTC midnight date. Intended for tables and tests.
func MustDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateToDay returns t as a calendar date at UTC midnight.
// Only the year, month and day of t take part; its location is dropped
// so that two dates compare equal regardless of where they came from.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SundayOnOrBefore returns the Sunday of the Sunday-first week containing t.
func SundayOnOrBefore(t time.Time) time.Time {
	t = TruncateToDay(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// DaysBetween returns the number of whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(TruncateToDay(b).Sub(TruncateToDay(a)).Hours() / 24)
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// FormatDMY renders t as DD/MM/YYYY.
func FormatDMY(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatDM renders t as DD/MM.
func FormatDM(t time.Time) string {
	return t.Format("02/01")
}

// EachDay calls fn for every calendar day from start to end inclusive.
// Iteration stops early if fn returns false.
func EachDay(start, end time.Time, fn func(time.Time) bool) {
	start, end = TruncateToDay(start), TruncateToDay(end)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !fn(d) {
			return
		}
	}
}

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2})?$`)

// NormalizeTime converts "9:00", "09:00" and "09:00:00" into "09:00".
// Empty input yields an empty string and no error.
func NormalizeTime(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

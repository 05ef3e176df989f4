package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty is rejected", func(t *testing.T) {
		_, err := ParseDate("")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})

	t.Run("impossible day", func(t *testing.T) {
		_, err := ParseDate("2027-02-30")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid date range", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "2025-01-20")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.Start.Equal(MustDate(2025, 1, 15)) {
			t.Errorf("got start %v", dr.Start)
		}
		if !dr.End.Equal(MustDate(2025, 1, 20)) {
			t.Errorf("got end %v", dr.End)
		}
		if !dr.Contains(MustDate(2025, 1, 20)) {
			t.Error("expected range to contain its end date")
		}
		if dr.Contains(MustDate(2025, 1, 21)) {
			t.Error("expected range to exclude the day after its end")
		}
	})

	t.Run("empty end defaults to start", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.Start.Equal(dr.End) {
			t.Errorf("expected start and end to be equal, got %v and %v", dr.Start, dr.End)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewDateRange("2025-01-20", "2025-01-15")
		if !errors.Is(err, ErrEndDateBeforeStart) {
			t.Errorf("got error %v, want %v", err, ErrEndDateBeforeStart)
		}
	})
}

func TestSundayOnOrBefore(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"tuesday", MustDate(2026, 9, 1), MustDate(2026, 8, 30)},
		{"sunday itself", MustDate(2024, 9, 1), MustDate(2024, 9, 1)},
		{"saturday", MustDate(2025, 9, 6), MustDate(2025, 8, 31)},
		{"ignores clock", time.Date(2027, 3, 15, 23, 59, 0, 0, time.UTC), MustDate(2027, 3, 14)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SundayOnOrBefore(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTruncateToDay_DropsLocation(t *testing.T) {
	loc := time.FixedZone("IDT", 3*60*60)
	got := TruncateToDay(time.Date(2027, 3, 15, 1, 30, 0, 0, loc))
	if !got.Equal(MustDate(2027, 3, 15)) {
		t.Errorf("expected 2027-03-15 UTC, got %v", got)
	}
}

func TestEachDay(t *testing.T) {
	var days []string
	EachDay(MustDate(2027, 2, 27), MustDate(2027, 3, 2), func(d time.Time) bool {
		days = append(days, Format(d))
		return true
	})
	want := []string{"2027-02-27", "2027-02-28", "2027-03-01", "2027-03-02"}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d (%v)", len(want), len(days), days)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("day %d: expected %s, got %s", i, want[i], days[i])
		}
	}

	count := 0
	EachDay(MustDate(2027, 3, 2), MustDate(2027, 3, 1), func(time.Time) bool {
		count++
		return true
	})
	if count != 0 {
		t.Errorf("expected no iterations for inverted range, got %d", count)
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"09:00", "09:00", false},
		{"9:00", "09:00", false},
		{"13:30:00", "13:30", false},
		{"24:00", "", true},
		{"noon", "", true},
		{"9.00", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeTime(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeFormat) {
					t.Fatalf("expected ErrInvalidTimeFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatting(t *testing.T) {
	d := MustDate(2027, 3, 5)
	if got := FormatDMY(d); got != "05/03/2027" {
		t.Errorf("FormatDMY: expected 05/03/2027, got %s", got)
	}
	if got := FormatDM(d); got != "05/03" {
		t.Errorf("FormatDM: expected 05/03, got %s", got)
	}
	if got := DaysBetween(MustDate(2027, 3, 1), d); got != 4 {
		t.Errorf("DaysBetween: expected 4, got %d", got)
	}
}

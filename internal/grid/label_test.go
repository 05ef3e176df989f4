package grid

import (
	"testing"

	"github.com/javiermolinar/luach/internal/dateutil"
)

func TestYearLabel(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{2023, `תשפ"ד`},
		{2025, `תשפ"ו`},
		{2026, `תשפ"ז`},
		{2029, `תש"צ`},
		{1954, `תשט"ו`},
		{1955, `תשט"ז`},
		{2039, `ת"ת`},
	}

	for _, tt := range tests {
		if got := YearLabel(tt.year); got != tt.want {
			t.Errorf("YearLabel(%d): expected %s, got %s", tt.year, tt.want, got)
		}
	}
}

func TestRangeLabel(t *testing.T) {
	if got := rangeLabel(dateutil.MustDate(2027, 1, 3), dateutil.MustDate(2027, 1, 9)); got != "3-9.1" {
		t.Errorf("expected 3-9.1, got %s", got)
	}
	if got := rangeLabel(dateutil.MustDate(2026, 12, 27), dateutil.MustDate(2027, 1, 2)); got != "27.12-2.1" {
		t.Errorf("expected 27.12-2.1, got %s", got)
	}
}

func TestParseEventType(t *testing.T) {
	tests := []struct {
		in      string
		want    EventType
		wantErr bool
	}{
		{"official_exam", TypeOfficialExam, false},
		{"bagrut", TypeOfficialExam, false},
		{"magen", TypeMockExam, false},
		{"trip", TypeTrip, false},
		{"", "", true},
		{"Trip", "", true},
	}

	for _, tt := range tests {
		got, err := ParseEventType(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseEventType(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseEventType(%q): expected %s, got %s (%v)", tt.in, tt.want, got, err)
		}
	}

	if !TypeTrip.Locked() || TypeOfficialExam.Locked() {
		t.Error("expected only trips to be locked")
	}
	if EventType("bagrut").Valid() {
		t.Error("expected legacy alias not to be a stored type")
	}
}

func TestDefaultRange(t *testing.T) {
	g := newTestGrid(t)

	from, to := DefaultRange(g, dateutil.MustDate(2026, 11, 4))
	if !from.Equal(dateutil.MustDate(2026, 11, 1)) || !to.Equal(dateutil.MustDate(2027, 8, 31)) {
		t.Errorf("expected 2026-11-01..2027-08-31, got %v..%v", from, to)
	}

	// Before the grid: clamp the start.
	from, _ = DefaultRange(g, dateutil.MustDate(2026, 7, 1))
	if !from.Equal(dateutil.MustDate(2026, 8, 30)) {
		t.Errorf("expected start clamped to grid start, got %v", from)
	}

	// Long after the grid: fall back to the whole span.
	from, to = DefaultRange(g, dateutil.MustDate(2028, 1, 1))
	if !from.Equal(dateutil.MustDate(2026, 8, 30)) || !to.Equal(dateutil.MustDate(2027, 9, 4)) {
		t.Errorf("expected the whole grid, got %v..%v", from, to)
	}
}

func TestWeeksBetween(t *testing.T) {
	g := newTestGrid(t)
	got := g.WeeksBetween(dateutil.MustDate(2027, 3, 17), dateutil.MustDate(2027, 3, 21))
	if len(got) != 2 || got[0] != 28 || got[1] != 29 {
		t.Errorf("expected weeks [28 29], got %v", got)
	}
	if got := g.WeeksBetween(dateutil.MustDate(2030, 1, 1), dateutil.MustDate(2030, 2, 1)); len(got) != 0 {
		t.Errorf("expected no weeks, got %v", got)
	}
}

func TestDominant(t *testing.T) {
	tests := []struct {
		types []EventType
		want  EventType
	}{
		{nil, TypeGeneral},
		{[]EventType{TypeGeneral, TypeHoliday}, TypeHoliday},
		{[]EventType{TypeVacation, TypeTrip}, TypeTrip},
		{[]EventType{TypeMockExam, TypeOfficialExam, TypeTrip}, TypeOfficialExam},
	}

	for _, tt := range tests {
		var evs []*Event
		for _, typ := range tt.types {
			evs = append(evs, &Event{Text: "x", Type: typ, Class: ClassAll})
		}
		if got := Dominant(evs); got != tt.want {
			t.Errorf("Dominant(%v): expected %s, got %s", tt.types, tt.want, got)
		}
	}
}

func TestDisplayNames(t *testing.T) {
	if Sunday.Name() != "ראשון" || Shabbat.Name() != "שבת" {
		t.Errorf("unexpected day names %s, %s", Sunday.Name(), Shabbat.Name())
	}
	if DayKey("funday").Name() != "funday" {
		t.Error("expected unknown key to fall back to itself")
	}
	if TypeOfficialExam.Label() != "בגרות" {
		t.Errorf("unexpected label %s", TypeOfficialExam.Label())
	}
}

package grid

import (
	"testing"
	"time"

	"github.com/javiermolinar/luach/internal/dateutil"
)

func TestBuild_Bounds(t *testing.T) {
	g := Build(2026, BuildOptions{})

	// September 1, 2026 is a Tuesday.
	wantFirst := dateutil.MustDate(2026, 8, 30)
	if !g.Weeks[0].Start.Equal(wantFirst) {
		t.Errorf("expected first week start %v, got %v", wantFirst, g.Weeks[0].Start)
	}

	last := g.Weeks[len(g.Weeks)-1]
	wantLast := dateutil.MustDate(2027, 8, 29)
	if !last.Start.Equal(wantLast) {
		t.Errorf("expected last week start %v, got %v", wantLast, last.Start)
	}
	if len(g.Weeks) != 53 {
		t.Errorf("expected 53 weeks, got %d", len(g.Weeks))
	}
	if last.EndDate().Before(dateutil.MustDate(2027, 8, 31)) {
		t.Errorf("expected last week to reach August 31, ends %v", last.EndDate())
	}
}

func TestBuild_AnchorOnSunday(t *testing.T) {
	// September 1, 2024 is itself a Sunday.
	g := Build(2024, BuildOptions{})
	if !g.Weeks[0].Start.Equal(dateutil.MustDate(2024, 9, 1)) {
		t.Errorf("expected first week to start on 2024-09-01, got %v", g.Weeks[0].Start)
	}
}

func TestBuild_Contiguous(t *testing.T) {
	for _, year := range []int{2024, 2025, 2026, 2027, 2030} {
		g := Build(year, BuildOptions{})
		for i := 1; i < len(g.Weeks); i++ {
			want := g.Weeks[i-1].Start.AddDate(0, 0, 7)
			if !g.Weeks[i].Start.Equal(want) {
				t.Fatalf("year %d week %d: expected start %v, got %v", year, i, want, g.Weeks[i].Start)
			}
			if g.Weeks[i].Start.Weekday() != time.Sunday {
				t.Fatalf("year %d week %d: expected Sunday start, got %v", year, i, g.Weeks[i].Start.Weekday())
			}
		}
		for i, w := range g.Weeks {
			if len(w.Days) != 7 {
				t.Fatalf("year %d week %d: expected 7 day slots, got %d", year, i, len(w.Days))
			}
		}
	}
}

func TestBuild_DateRangeLabels(t *testing.T) {
	g := Build(2026, BuildOptions{})

	tests := []struct {
		week int
		want string
	}{
		{0, "30.8-5.9"},
		{1, "6-12.9"},
		{28, "14-20.3"},
	}
	for _, tt := range tests {
		if got := g.Weeks[tt.week].DateRange; got != tt.want {
			t.Errorf("week %d: expected label %q, got %q", tt.week, tt.want, got)
		}
	}
}

func TestBuild_YearLabel(t *testing.T) {
	g := Build(2026, BuildOptions{})
	if g.YearLabel != `תשפ"ז` {
		t.Errorf("expected computed label, got %q", g.YearLabel)
	}

	g = Build(2026, BuildOptions{
		Holidays: []HolidaySet{{Year: 2026, Label: "custom"}},
	})
	if g.YearLabel != "custom" {
		t.Errorf("expected label from holiday set, got %q", g.YearLabel)
	}
}

func TestBuild_WithHolidays(t *testing.T) {
	g := Build(2026, BuildOptions{
		Parasha: map[string]string{"2026-08-30": "Ki Tavo"},
		Classes: []string{"11A"},
		Holidays: []HolidaySet{
			{
				Year: 2026,
				Holidays: []Holiday{
					{Date: "2026-09-12", Text: "Rosh Hashana"},
					{Date: "not-a-date", Text: "Broken"},
					{Date: "2026-10-21", Text: "Memorial", Type: "general"},
				},
				Vacations: []Vacation{
					{Start: "2026-12-04", End: "2026-12-06", Text: "Hanukkah break"},
					{Start: "2026-12-10", End: "2026-12-01", Text: "Inverted"},
				},
			},
		},
	})

	slot, _ := g.Locate(dateutil.MustDate(2026, 9, 12))
	evs := g.Events(slot)
	if len(evs) != 1 || evs[0].Text != "Rosh Hashana" || evs[0].Type != TypeHoliday || evs[0].Class != ClassAll {
		t.Fatalf("expected one all-classes holiday, got %+v", evs)
	}

	slot, _ = g.Locate(dateutil.MustDate(2026, 10, 21))
	if evs := g.Events(slot); len(evs) != 1 || evs[0].Type != TypeGeneral {
		t.Errorf("expected holiday type override to general, got %+v", evs)
	}

	for d := 4; d <= 6; d++ {
		slot, _ := g.Locate(dateutil.MustDate(2026, 12, d))
		evs := g.Events(slot)
		if len(evs) != 1 || evs[0].Type != TypeVacation {
			t.Errorf("December %d: expected one vacation event, got %+v", d, evs)
		}
	}

	if g.Parasha["2026-08-30"] != "Ki Tavo" {
		t.Errorf("expected parasha to be copied, got %v", g.Parasha)
	}
	if len(g.Classes) != 1 || g.Classes[0] != "11A" {
		t.Errorf("expected classes [11A], got %v", g.Classes)
	}
}

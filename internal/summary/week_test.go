package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/luach/internal/dateutil"
	"github.com/javiermolinar/luach/internal/grid"
)

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g := grid.Build(2026, grid.BuildOptions{
		Parasha: map[string]string{
			"2027-03-14": "Vayikra",
			"2027-03-21": "Tzav",
		},
	})
	add := func(y int, m time.Month, d int, ev grid.Event) {
		if _, err := g.AddEvent(dateutil.MustDate(y, m, d), ev); err != nil {
			t.Fatalf("AddEvent failed: %v", err)
		}
	}
	add(2027, 3, 15, grid.Event{Text: "Math (35381)", Type: grid.TypeOfficialExam, Class: "11A"})
	add(2027, 3, 15, grid.Event{Text: "Trip north", Type: grid.TypeTrip, Class: grid.ClassAll})
	add(2027, 3, 18, grid.Event{Text: "Bio", Type: grid.TypeOfficialExam, Class: "11B"})
	add(2027, 3, 24, grid.Event{Text: "Bio", Type: grid.TypeOfficialExam, Class: "11B"})
	add(2027, 3, 30, grid.Event{Text: "Passover", Type: grid.TypeVacation, Class: grid.ClassAll})
	return g
}

func TestShareText(t *testing.T) {
	g := testGrid(t)

	got := ShareText(g, "11A", []int{28, 29, 30})
	want := strings.Join([]string{
		`*לוח שנה תשפ"ז - 11A*`,
		``,
		`*שבוע 14-20.3*`,
		`  פרשת Vayikra`,
		`  שני 15/03: Math (35381)`,
		`  שני 15/03: Trip north`,
		``,
		`*שבוע 28.3-3.4*`,
		`  שלישי 30/03: Passover`,
	}, "\n")

	if got != want {
		t.Errorf("unexpected text:\n%s\nwant:\n%s", got, want)
	}
}

func TestShareText_OtherClassAndBadIndex(t *testing.T) {
	g := testGrid(t)

	got := ShareText(g, "11B", []int{29, -1, 500})
	if !strings.Contains(got, "  רביעי 24/03: Bio") {
		t.Errorf("expected 11B exam, got:\n%s", got)
	}
	if strings.Contains(got, "Vayikra") || !strings.Contains(got, "Tzav") {
		t.Errorf("expected only week 29 with its reading, got:\n%s", got)
	}

	if got := ShareText(g, "9A", []int{29}); got != `*לוח שנה תשפ"ז - 9A*` {
		t.Errorf("expected title only, got %q", got)
	}
}

func TestCount(t *testing.T) {
	g := testGrid(t)

	counts := Count(g, "11A", []int{28, 29, 30})
	if counts[grid.TypeOfficialExam] != 1 || counts[grid.TypeTrip] != 1 || counts[grid.TypeVacation] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}

	counts = Count(g, "11B", []int{28, 29})
	if counts[grid.TypeOfficialExam] != 2 || counts[grid.TypeTrip] != 1 {
		t.Errorf("unexpected 11B counts %v", counts)
	}
}

func TestSummarize(t *testing.T) {
	g := testGrid(t)

	s := Summarize(g, "11A", dateutil.MustDate(2027, 3, 16), dateutil.MustDate(2027, 3, 22))
	if len(s.Weeks) != 2 || s.Weeks[0] != 28 || s.Weeks[1] != 29 {
		t.Errorf("expected weeks [28 29], got %v", s.Weeks)
	}
	if s.Counts[grid.TypeOfficialExam] != 1 {
		t.Errorf("expected 1 official exam, got %v", s.Counts)
	}
	if !strings.Contains(s.Text, "Math (35381)") {
		t.Errorf("expected share text, got %q", s.Text)
	}
}

type stubRepo struct {
	grid.Repository
	g *grid.Grid
}

func (r stubRepo) GetGrid(_ context.Context, schoolID string) (*grid.Grid, error) {
	if r.g == nil || schoolID != "s" {
		return nil, grid.ErrGridNotFound
	}
	return r.g, nil
}

func TestBuild(t *testing.T) {
	repo := stubRepo{g: testGrid(t)}
	now := func() time.Time { return dateutil.MustDate(2027, 3, 17) }

	s, err := Build(context.Background(), repo, BuildOptions{SchoolID: "s", Class: "11A", Now: now})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !s.Start.Equal(dateutil.MustDate(2027, 3, 14)) || !s.End.Equal(dateutil.MustDate(2027, 8, 31)) {
		t.Errorf("expected default range 2027-03-14..2027-08-31, got %v..%v", s.Start, s.End)
	}
	if s.Weeks[0] != 28 {
		t.Errorf("expected first week 28, got %d", s.Weeks[0])
	}

	_, err = Build(context.Background(), repo, BuildOptions{SchoolID: "missing"})
	if !errors.Is(err, grid.ErrGridNotFound) {
		t.Errorf("expected ErrGridNotFound, got %v", err)
	}

	_, err = Build(context.Background(), repo, BuildOptions{
		SchoolID: "s",
		From:     dateutil.MustDate(2030, 1, 1),
		To:       dateutil.MustDate(2030, 2, 1),
	})
	if !errors.Is(err, ErrNoWeeks) {
		t.Errorf("expected ErrNoWeeks, got %v", err)
	}
}

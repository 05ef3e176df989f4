package grid

import (
	"fmt"
	"strings"
	"time"
)

// rangeLabel renders a week's span as "d-d.m", or "d.m-d.m" across a month boundary.
func rangeLabel(start, end time.Time) string {
	if start.Month() == end.Month() {
		return fmt.Sprintf("%d-%d.%d", start.Day(), end.Day(), int(start.Month()))
	}
	return fmt.Sprintf("%d.%d-%d.%d", start.Day(), int(start.Month()), end.Day(), int(end.Month()))
}

// ExamLabel builds the display text of an imported exam. Times must already be normalized.
func ExamLabel(name, id, start, end string) string {
	base := strings.TrimSpace(fmt.Sprintf("%s (%s)", name, id))
	switch {
	case start != "" && end != "":
		return fmt.Sprintf("%s %s-%s", base, start, end)
	case start != "":
		return fmt.Sprintf("%s %s", base, start)
	default:
		return base
	}
}

var hebrewLetters = []struct {
	value  int
	letter string
}{
	{400, "ת"}, {300, "ש"}, {200, "ר"}, {100, "ק"},
	{90, "צ"}, {80, "פ"}, {70, "ע"}, {60, "ס"}, {50, "נ"},
	{40, "מ"}, {30, "ל"}, {20, "כ"}, {10, "י"},
	{9, "ט"}, {8, "ח"}, {7, "ז"}, {6, "ו"}, {5, "ה"},
	{4, "ד"}, {3, "ג"}, {2, "ב"}, {1, "א"},
}

// YearLabel returns the Hebrew year numeral for the academic year starting in
// September of startYear, e.g. 2026 -> תשפ"ז. The thousands are omitted.
func YearLabel(startYear int) string {
	n := (startYear + 3761) % 1000
	if n <= 0 {
		return fmt.Sprintf("%d-%d", startYear, startYear+1)
	}

	var letters []string
	for n > 0 {
		// 15 and 16 are written 9+6 and 9+7.
		if n == 15 || n == 16 {
			letters = append(letters, "ט", hebrewLetters[len(hebrewLetters)-(n-9)].letter)
			break
		}
		for _, hl := range hebrewLetters {
			if hl.value <= n {
				letters = append(letters, hl.letter)
				n -= hl.value
				break
			}
		}
	}

	if len(letters) == 1 {
		return letters[0] + "'"
	}
	last := len(letters) - 1
	return strings.Join(letters[:last], "") + `"` + letters[last]
}

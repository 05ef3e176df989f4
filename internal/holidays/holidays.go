// Package holidays loads holiday seed files: per civil year, the national
// holidays, the school vacations and the weekly readings.
//
// A seed file is YAML (or JSON, which YAML accepts) keyed by year:
//
//	"2027":
//	  label: תשפ"ז
//	  holidays:
//	    - {date: "2027-04-22", text: Independence Day}
//	  school_vacations:
//	    - {start: "2027-04-12", end: "2027-04-18", text: Passover}
package holidays

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/luach/internal/grid"
)

// ErrInvalidYear is returned for a top-level key that is not a year.
var ErrInvalidYear = errors.New("invalid year key")

type entry struct {
	Label     string            `yaml:"label"`
	Holidays  []grid.Holiday    `yaml:"holidays"`
	Vacations []grid.Vacation   `yaml:"school_vacations"`
	Parasha   map[string]string `yaml:"parasha"`
}

// Load decodes a seed document. Sets are returned sorted by year.
func Load(r io.Reader) ([]grid.HolidaySet, error) {
	var doc map[string]entry
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode holidays: %w", err)
	}

	sets := make([]grid.HolidaySet, 0, len(doc))
	for key, e := range doc {
		year, err := strconv.Atoi(key)
		if err != nil || year < 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidYear, key)
		}
		sets = append(sets, grid.HolidaySet{
			Year:      year,
			Label:     e.Label,
			Holidays:  e.Holidays,
			Vacations: e.Vacations,
			Parasha:   e.Parasha,
		})
	}

	sort.Slice(sets, func(i, j int) bool { return sets[i].Year < sets[j].Year })
	return sets, nil
}

// LoadFile reads a seed document from path.
func LoadFile(path string) ([]grid.HolidaySet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// ForAcademicYear returns the sets that can touch the academic year starting
// in September of startYear: that civil year and the next.
func ForAcademicYear(sets []grid.HolidaySet, startYear int) []grid.HolidaySet {
	var out []grid.HolidaySet
	for _, s := range sets {
		if s.Year == startYear || s.Year == startYear+1 {
			out = append(out, s)
		}
	}
	return out
}

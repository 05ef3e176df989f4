package grid

import (
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/luach/internal/dateutil"
)

// BuildOptions configures Build.
type BuildOptions struct {
	// Holidays are applied after the weeks are laid out. Sets for any civil
	// year may be passed; dates outside the grid are ignored.
	Holidays []HolidaySet

	// Parasha maps a week start date (YYYY-MM-DD) to its weekly reading.
	Parasha map[string]string

	// Classes seeds the grid's class list.
	Classes []string

	// Logger receives skipped holiday records. Defaults to a no-op logger.
	Logger *zap.Logger
}

// YearBounds returns the first week start and the last day of the academic
// year beginning in September of startYear.
func YearBounds(startYear int) (anchor, yearEnd time.Time) {
	anchor = dateutil.SundayOnOrBefore(dateutil.MustDate(startYear, time.September, 1))
	yearEnd = dateutil.MustDate(startYear+1, time.August, 31)
	return anchor, yearEnd
}

// Build lays out the weeks of the academic year starting in September of
// startYear and applies any supplied holidays and vacations.
func Build(startYear int, opts BuildOptions) *Grid {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	anchor, yearEnd := YearBounds(startYear)
	g := &Grid{
		YearLabel: YearLabel(startYear),
		Classes:   append([]string(nil), opts.Classes...),
		Parasha:   make(map[string]string),
	}
	for start := anchor; !start.After(yearEnd); start = start.AddDate(0, 0, 7) {
		g.Weeks = append(g.Weeks, NewWeek(start))
	}

	for k, v := range opts.Parasha {
		g.Parasha[k] = v
	}

	for _, set := range opts.Holidays {
		if set.Year == startYear && set.Label != "" {
			g.YearLabel = set.Label
		}
	}

	if len(opts.Holidays) > 0 {
		res := g.ImportHolidays(opts.Holidays...)
		for _, reason := range res.Skipped {
			log.Warn("skipped holiday record", zap.String("reason", reason))
		}
		log.Debug("applied holidays",
			zap.Int("sets", len(opts.Holidays)),
			zap.Int("added", res.Added),
		)
	}

	log.Info("built academic year",
		zap.Int("start_year", startYear),
		zap.String("year_label", g.YearLabel),
		zap.Int("weeks", len(g.Weeks)),
	)
	return g
}

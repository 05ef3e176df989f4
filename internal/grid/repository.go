package grid

import "context"

// TimetableMeta describes the stored timetable batch.
type TimetableMeta struct {
	Moed        string
	Source      string
	LastUpdated string // YYYY-MM-DD
	Count       int
}

// Repository defines the document store the calendar is persisted in.
// Writes are whole-document overwrites; the last writer wins.
type Repository interface {
	// GetGrid loads a school's grid. Returns ErrGridNotFound if none was saved.
	GetGrid(ctx context.Context, schoolID string) (*Grid, error)

	// SaveGrid stores a school's grid, replacing any previous version.
	SaveGrid(ctx context.Context, schoolID string, g *Grid) error

	// ListExams returns the stored timetable ordered by date then code.
	ListExams(ctx context.Context) ([]ExternalRecord, error)

	// GetExam returns a single timetable record, or nil if unknown.
	GetExam(ctx context.Context, code string) (*ExternalRecord, error)

	// SaveExams replaces the stored timetable and its metadata atomically.
	SaveExams(ctx context.Context, records []ExternalRecord, meta TimetableMeta) error

	// ExamMeta returns the metadata of the stored timetable.
	ExamMeta(ctx context.Context) (TimetableMeta, error)

	// GetHolidaySet returns the holidays stored for a civil year, or nil.
	GetHolidaySet(ctx context.Context, year int) (*HolidaySet, error)

	// SaveHolidaySets upserts holiday sets keyed by year.
	SaveHolidaySets(ctx context.Context, sets []HolidaySet) error

	// Close releases any resources held by the repository.
	Close() error
}

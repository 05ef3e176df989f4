// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/luach/internal/grid"
)

// SQLite implements grid.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// GetGrid loads the grid document saved for a school.
// Returns grid.ErrGridNotFound if the school has none.
func (s *SQLite) GetGrid(ctx context.Context, schoolID string) (*grid.Grid, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM schedules WHERE school_id = ?`, schoolID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, grid.ErrGridNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying schedule: %w", err)
	}

	var g grid.Grid
	if err := json.Unmarshal([]byte(body), &g); err != nil {
		return nil, fmt.Errorf("decoding schedule for %q: %w", schoolID, err)
	}
	return &g, nil
}

// SaveGrid stores the whole grid document, replacing any previous version.
func (s *SQLite) SaveGrid(ctx context.Context, schoolID string, g *grid.Grid) error {
	body, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}

	query := `
		INSERT INTO schedules (school_id, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(school_id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, schoolID, string(body), s.now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}
	return nil
}

// ListExams returns the stored timetable ordered by date then code.
func (s *SQLite) ListExams(ctx context.Context) ([]grid.ExternalRecord, error) {
	query := `
		SELECT code, name, exam_date, start_time, end_time
		FROM exams
		ORDER BY exam_date, code
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying exams: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []grid.ExternalRecord
	for rows.Next() {
		var r grid.ExternalRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Date, &r.StartTime, &r.EndTime); err != nil {
			return nil, fmt.Errorf("scanning exam: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exams: %w", err)
	}

	return records, nil
}

// GetExam retrieves one timetable record by code, or nil if unknown.
func (s *SQLite) GetExam(ctx context.Context, code string) (*grid.ExternalRecord, error) {
	query := `SELECT code, name, exam_date, start_time, end_time FROM exams WHERE code = ?`

	var r grid.ExternalRecord
	err := s.db.QueryRowContext(ctx, query, code).Scan(&r.ID, &r.Name, &r.Date, &r.StartTime, &r.EndTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying exam: %w", err)
	}
	return &r, nil
}

// SaveExams replaces the stored timetable and its metadata in one transaction.
// Records sharing a code keep the last occurrence.
func (s *SQLite) SaveExams(ctx context.Context, records []grid.ExternalRecord, meta grid.TimetableMeta) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM exams`); err != nil {
		return fmt.Errorf("clearing exams: %w", err)
	}

	query := `
		INSERT INTO exams (code, name, exam_date, start_time, end_time) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			exam_date = excluded.exam_date,
			start_time = excluded.start_time,
			end_time = excluded.end_time
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.ID, r.Name, r.Date, r.StartTime, r.EndTime); err != nil {
			return fmt.Errorf("inserting exam %q: %w", r.ID, err)
		}
	}

	metaQuery := `
		INSERT INTO exam_meta (id, moed, source, last_updated, exam_count) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			moed = excluded.moed,
			source = excluded.source,
			last_updated = excluded.last_updated,
			exam_count = excluded.exam_count
	`
	if _, err := tx.ExecContext(ctx, metaQuery, meta.Moed, meta.Source, meta.LastUpdated, meta.Count); err != nil {
		return fmt.Errorf("saving exam metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ExamMeta returns the metadata of the stored timetable. It is zero before
// the first SaveExams.
func (s *SQLite) ExamMeta(ctx context.Context) (grid.TimetableMeta, error) {
	var m grid.TimetableMeta
	err := s.db.QueryRowContext(ctx,
		`SELECT moed, source, last_updated, exam_count FROM exam_meta WHERE id = 1`,
	).Scan(&m.Moed, &m.Source, &m.LastUpdated, &m.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return grid.TimetableMeta{}, nil
	}
	if err != nil {
		return grid.TimetableMeta{}, fmt.Errorf("querying exam metadata: %w", err)
	}
	return m, nil
}

// GetHolidaySet returns the holidays stored for a civil year, or nil.
func (s *SQLite) GetHolidaySet(ctx context.Context, year int) (*grid.HolidaySet, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM holiday_sets WHERE year = ?`, year).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying holiday set: %w", err)
	}

	var set grid.HolidaySet
	if err := json.Unmarshal([]byte(body), &set); err != nil {
		return nil, fmt.Errorf("decoding holiday set %d: %w", year, err)
	}
	set.Year = year
	return &set, nil
}

// SaveHolidaySets upserts holiday sets keyed by year.
func (s *SQLite) SaveHolidaySets(ctx context.Context, sets []grid.HolidaySet) error {
	if len(sets) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO holiday_sets (year, body) VALUES (?, ?)
		ON CONFLICT(year) DO UPDATE SET body = excluded.body
	`
	for _, set := range sets {
		body, err := json.Marshal(set)
		if err != nil {
			return fmt.Errorf("encoding holiday set %d: %w", set.Year, err)
		}
		if _, err := tx.ExecContext(ctx, query, set.Year, string(body)); err != nil {
			return fmt.Errorf("saving holiday set %d: %w", set.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

var _ grid.Repository = (*SQLite)(nil)

package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS schedules (
			school_id   TEXT PRIMARY KEY,
			body        TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS exams (
			code        TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			exam_date   TEXT NOT NULL,
			start_time  TEXT NOT NULL DEFAULT '',
			end_time    TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_exams_date ON exams(exam_date);

		CREATE TABLE IF NOT EXISTS exam_meta (
			id            INTEGER PRIMARY KEY CHECK(id = 1),
			moed          TEXT NOT NULL DEFAULT '',
			source        TEXT NOT NULL DEFAULT '',
			last_updated  TEXT NOT NULL DEFAULT '',
			exam_count    INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS holiday_sets (
			year  INTEGER PRIMARY KEY,
			body  TEXT NOT NULL
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}

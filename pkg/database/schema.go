package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is applied statement by statement; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS teachers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subjects TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS classes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		grade TEXT NOT NULL,
		student_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS subjects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS teacher_availability (
		id TEXT PRIMARY KEY,
		teacher_id TEXT NOT NULL,
		day TEXT NOT NULL,
		period TEXT NOT NULL,
		available BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (teacher_id, day, period)
	)`,
	`CREATE TABLE IF NOT EXISTS class_subject_requirements (
		id TEXT PRIMARY KEY,
		class_id TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		periods_per_week INTEGER NOT NULL CHECK (periods_per_week >= 0),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (class_id, subject_id)
	)`,
	`CREATE TABLE IF NOT EXISTS timetable_entries (
		seq BIGSERIAL,
		id TEXT PRIMARY KEY,
		class_id TEXT NOT NULL,
		teacher_id TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		day TEXT NOT NULL,
		period TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (class_id, day, period)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_timetable_entries_teacher ON timetable_entries (teacher_id, day, period)`,
}

// EnsureSchema creates the timetable tables when they are missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

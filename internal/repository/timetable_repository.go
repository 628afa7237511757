package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

const entryColumns = "id, class_id, teacher_id, subject_id, day, period, created_at, updated_at"

// TimetableRepository persists timetable entries.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs a TimetableRepository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// List returns entries in insertion order, optionally restricted to one class.
func (r *TimetableRepository) List(ctx context.Context, classID string) ([]models.TimetableEntry, error) {
	entries := []models.TimetableEntry{}
	query := "SELECT " + entryColumns + " FROM timetable_entries"
	var args []interface{}
	if classID != "" {
		query += " WHERE class_id = $1"
		args = append(args, classID)
	}
	query += " ORDER BY seq"
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list timetable entries: %w", err)
	}
	return entries, nil
}

// FindByID fetches an entry by ID.
func (r *TimetableRepository) FindByID(ctx context.Context, id string) (*models.TimetableEntry, error) {
	query := "SELECT " + entryColumns + " FROM timetable_entries WHERE id = $1"
	var entry models.TimetableEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create inserts an entry or overwrites the one holding the same class slot.
func (r *TimetableRepository) Create(ctx context.Context, entry *models.TimetableEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	const query = `INSERT INTO timetable_entries (id, class_id, teacher_id, subject_id, day, period, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (class_id, day, period) DO UPDATE SET teacher_id = EXCLUDED.teacher_id, subject_id = EXCLUDED.subject_id, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	var stored struct {
		ID        string    `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if err := r.db.GetContext(ctx, &stored, query,
		entry.ID, entry.ClassID, entry.TeacherID, entry.SubjectID, entry.Day, entry.Period,
		entry.CreatedAt, entry.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create timetable entry: %w", err)
	}
	entry.ID = stored.ID
	entry.CreatedAt = stored.CreatedAt
	return nil
}

// Update modifies an entry in place.
func (r *TimetableRepository) Update(ctx context.Context, entry *models.TimetableEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	const query = `UPDATE timetable_entries SET class_id = :class_id, teacher_id = :teacher_id, subject_id = :subject_id,
		day = :day, period = :period, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("update timetable entry: %w", err)
	}
	return requireAffected(res)
}

// Delete removes an entry.
func (r *TimetableRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM timetable_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete timetable entry: %w", err)
	}
	return requireAffected(res)
}

// Clear removes every entry.
func (r *TimetableRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM timetable_entries`); err != nil {
		return fmt.Errorf("clear timetable entries: %w", err)
	}
	return nil
}

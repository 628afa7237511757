package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

const availabilityColumns = "id, teacher_id, day, period, available, created_at, updated_at"

// AvailabilityRepository persists per-slot teacher availability.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs an AvailabilityRepository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// List returns every availability record.
func (r *AvailabilityRepository) List(ctx context.Context) ([]models.Availability, error) {
	query := "SELECT " + availabilityColumns + " FROM teacher_availability ORDER BY created_at, id"
	records := []models.Availability{}
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return records, nil
}

// ListByTeacher returns the availability records for one teacher.
func (r *AvailabilityRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Availability, error) {
	query := "SELECT " + availabilityColumns + " FROM teacher_availability WHERE teacher_id = $1 ORDER BY created_at, id"
	records := []models.Availability{}
	if err := r.db.SelectContext(ctx, &records, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher availability: %w", err)
	}
	return records, nil
}

// Upsert writes the record for (teacher, day, period), overwriting any existing one.
func (r *AvailabilityRepository) Upsert(ctx context.Context, availability *models.Availability) error {
	if availability.ID == "" {
		availability.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	availability.CreatedAt = now
	availability.UpdatedAt = now

	const query = `INSERT INTO teacher_availability (id, teacher_id, day, period, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (teacher_id, day, period) DO UPDATE SET available = EXCLUDED.available, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	var stored struct {
		ID        string    `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if err := r.db.GetContext(ctx, &stored, query,
		availability.ID, availability.TeacherID, availability.Day, availability.Period,
		availability.Available, availability.CreatedAt, availability.UpdatedAt,
	); err != nil {
		return fmt.Errorf("upsert availability: %w", err)
	}
	availability.ID = stored.ID
	availability.CreatedAt = stored.CreatedAt
	return nil
}

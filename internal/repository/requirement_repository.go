package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

const requirementColumns = "id, class_id, subject_id, periods_per_week, created_at, updated_at"

// RequirementRepository persists class subject requirements.
type RequirementRepository struct {
	db *sqlx.DB
}

// NewRequirementRepository constructs a RequirementRepository.
func NewRequirementRepository(db *sqlx.DB) *RequirementRepository {
	return &RequirementRepository{db: db}
}

// List returns every requirement.
func (r *RequirementRepository) List(ctx context.Context) ([]models.ClassSubjectRequirement, error) {
	query := "SELECT " + requirementColumns + " FROM class_subject_requirements ORDER BY created_at, id"
	reqs := []models.ClassSubjectRequirement{}
	if err := r.db.SelectContext(ctx, &reqs, query); err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	return reqs, nil
}

// ListByClass returns the requirements of one class.
func (r *RequirementRepository) ListByClass(ctx context.Context, classID string) ([]models.ClassSubjectRequirement, error) {
	query := "SELECT " + requirementColumns + " FROM class_subject_requirements WHERE class_id = $1 ORDER BY created_at, id"
	reqs := []models.ClassSubjectRequirement{}
	if err := r.db.SelectContext(ctx, &reqs, query, classID); err != nil {
		return nil, fmt.Errorf("list class requirements: %w", err)
	}
	return reqs, nil
}

// FindByID fetches a requirement by ID.
func (r *RequirementRepository) FindByID(ctx context.Context, id string) (*models.ClassSubjectRequirement, error) {
	query := "SELECT " + requirementColumns + " FROM class_subject_requirements WHERE id = $1"
	var req models.ClassSubjectRequirement
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, err
	}
	return &req, nil
}

// Upsert writes the requirement for (class, subject), overwriting any existing one.
func (r *RequirementRepository) Upsert(ctx context.Context, requirement *models.ClassSubjectRequirement) error {
	if requirement.ID == "" {
		requirement.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	requirement.CreatedAt = now
	requirement.UpdatedAt = now

	const query = `INSERT INTO class_subject_requirements (id, class_id, subject_id, periods_per_week, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (class_id, subject_id) DO UPDATE SET periods_per_week = EXCLUDED.periods_per_week, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	var stored struct {
		ID        string    `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if err := r.db.GetContext(ctx, &stored, query,
		requirement.ID, requirement.ClassID, requirement.SubjectID, requirement.PeriodsPerWeek,
		requirement.CreatedAt, requirement.UpdatedAt,
	); err != nil {
		return fmt.Errorf("upsert requirement: %w", err)
	}
	requirement.ID = stored.ID
	requirement.CreatedAt = stored.CreatedAt
	return nil
}

// Delete removes a requirement.
func (r *RequirementRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM class_subject_requirements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete requirement: %w", err)
	}
	return requireAffected(res)
}

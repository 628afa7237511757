package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type requirementRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.ClassSubjectRequirement, error)
	FindByID(ctx context.Context, id string) (*models.ClassSubjectRequirement, error)
	Upsert(ctx context.Context, requirement *models.ClassSubjectRequirement) error
	Delete(ctx context.Context, id string) error
}

type classFinder interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

type subjectFinder interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

// UpsertRequirementRequest sets the weekly periods of one subject for a class.
type UpsertRequirementRequest struct {
	SubjectID      string `json:"subject_id" validate:"required"`
	PeriodsPerWeek int    `json:"periods_per_week" validate:"gte=0,lte=40"`
}

// RequirementService manages class subject requirements.
type RequirementService struct {
	repo      requirementRepository
	classes   classFinder
	subjects  subjectFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRequirementService constructs a RequirementService.
func NewRequirementService(repo requirementRepository, classes classFinder, subjects subjectFinder, validate *validator.Validate, logger *zap.Logger) *RequirementService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequirementService{repo: repo, classes: classes, subjects: subjects, validator: validate, logger: logger}
}

// ListByClass returns the requirements of a class.
func (s *RequirementService) ListByClass(ctx context.Context, classID string) ([]models.ClassSubjectRequirement, error) {
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		return nil, loadError(err, "class")
	}
	reqs, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, internalError(err, "failed to list requirements")
	}
	return reqs, nil
}

// Upsert creates or overwrites the requirement for (class, subject).
func (s *RequirementService) Upsert(ctx context.Context, classID string, req UpsertRequirementRequest) (*models.ClassSubjectRequirement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid requirement payload")
	}
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		return nil, loadError(err, "class")
	}
	if _, err := s.subjects.FindByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "subject not found")
		}
		return nil, loadError(err, "subject")
	}

	requirement := &models.ClassSubjectRequirement{
		ClassID:        classID,
		SubjectID:      req.SubjectID,
		PeriodsPerWeek: req.PeriodsPerWeek,
	}
	if err := s.repo.Upsert(ctx, requirement); err != nil {
		return nil, internalError(err, "failed to save requirement")
	}
	return requirement, nil
}

// Delete removes a requirement by id.
func (s *RequirementService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return loadError(err, "requirement")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete requirement")
	}
	return nil
}

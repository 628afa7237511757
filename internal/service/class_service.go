package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

type classRepository interface {
	List(ctx context.Context) ([]models.Class, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
}

// CreateClassRequest represents payload for creating classes.
type CreateClassRequest struct {
	Name         string `json:"name" validate:"required,max=60"`
	Grade        string `json:"grade" validate:"required,max=30"`
	StudentCount int    `json:"student_count" validate:"gte=0"`
}

// UpdateClassRequest represents a partial class update.
type UpdateClassRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=60"`
	Grade        *string `json:"grade" validate:"omitempty,min=1,max=30"`
	StudentCount *int    `json:"student_count" validate:"omitempty,gte=0"`
}

// ClassService orchestrates class operations.
type ClassService struct {
	repo      classRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs a ClassService.
func NewClassService(repo classRepository, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, validator: validate, logger: logger}
}

// List returns all classes.
func (s *ClassService) List(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list classes")
	}
	return classes, nil
}

// Get returns a class by id.
func (s *ClassService) Get(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "class")
	}
	return class, nil
}

// Create registers a class.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}
	class := &models.Class{
		Name:         strings.TrimSpace(req.Name),
		Grade:        strings.TrimSpace(req.Grade),
		StudentCount: req.StudentCount,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, internalError(err, "failed to create class")
	}
	return class, nil
}

// Update applies a partial update to a class.
func (s *ClassService) Update(ctx context.Context, id string, req UpdateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "class")
	}
	if req.Name != nil {
		class.Name = strings.TrimSpace(*req.Name)
	}
	if req.Grade != nil {
		class.Grade = strings.TrimSpace(*req.Grade)
	}
	if req.StudentCount != nil {
		class.StudentCount = *req.StudentCount
	}
	if err := s.repo.Update(ctx, class); err != nil {
		return nil, internalError(err, "failed to update class")
	}
	return class, nil
}

// Delete removes a class with its requirements and timetable entries.
func (s *ClassService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return loadError(err, "class")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete class")
	}
	s.logger.Info("class deleted", zap.String("class_id", id))
	return nil
}

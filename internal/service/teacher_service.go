package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

type teacherRepository interface {
	List(ctx context.Context) ([]models.Teacher, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id string) error
}

// CreateTeacherRequest represents payload for creating teachers.
type CreateTeacherRequest struct {
	Name     string   `json:"name" validate:"required,max=120"`
	Email    string   `json:"email" validate:"required,email"`
	Subjects []string `json:"subjects" validate:"omitempty,dive,required"`
}

// UpdateTeacherRequest represents a partial teacher update. Nil fields are left unchanged.
type UpdateTeacherRequest struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=120"`
	Email    *string  `json:"email" validate:"omitempty,email"`
	Subjects []string `json:"subjects" validate:"omitempty,dive,required"`
}

// TeacherService orchestrates teacher operations.
type TeacherService struct {
	repo      teacherRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, validator: validate, logger: logger}
}

// List returns all teachers.
func (s *TeacherService) List(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list teachers")
	}
	return teachers, nil
}

// Get returns a teacher by id.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "teacher")
	}
	return teacher, nil
}

// Create registers a new teacher.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}

	teacher := &models.Teacher{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Subjects: normalizeSubjects(req.Subjects),
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, internalError(err, "failed to create teacher")
	}
	return teacher, nil
}

// Update applies a partial update to a teacher.
func (s *TeacherService) Update(ctx context.Context, id string, req UpdateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}

	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "teacher")
	}

	if req.Name != nil {
		teacher.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		teacher.Email = strings.TrimSpace(*req.Email)
	}
	if req.Subjects != nil {
		teacher.Subjects = normalizeSubjects(req.Subjects)
	}

	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, internalError(err, "failed to update teacher")
	}
	return teacher, nil
}

// Delete removes a teacher, its availability and its timetable entries.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return loadError(err, "teacher")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete teacher")
	}
	s.logger.Info("teacher deleted", zap.String("teacher_id", id))
	return nil
}

func normalizeSubjects(ids []string) pq.StringArray {
	trimmed := lo.Map(ids, func(id string, _ int) string { return strings.TrimSpace(id) })
	return pq.StringArray(lo.Uniq(lo.Compact(trimmed)))
}

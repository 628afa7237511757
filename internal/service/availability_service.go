package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

type availabilityRepository interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Availability, error)
	Upsert(ctx context.Context, availability *models.Availability) error
}

type teacherFinder interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

// SetAvailabilityRequest marks one slot for a teacher. Available defaults to true.
type SetAvailabilityRequest struct {
	TeacherID string        `json:"teacher_id" validate:"required"`
	Day       models.Day    `json:"day" validate:"required,timetable_day"`
	Period    models.Period `json:"period" validate:"required,timetable_period"`
	Available *bool         `json:"available"`
}

// AvailabilityService manages teacher availability.
type AvailabilityService struct {
	repo      availabilityRepository
	teachers  teacherFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(repo availabilityRepository, teachers teacherFinder, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{repo: repo, teachers: teachers, validator: validate, logger: logger}
}

// ListByTeacher returns the explicit availability records of a teacher.
func (s *AvailabilityService) ListByTeacher(ctx context.Context, teacherID string) ([]models.Availability, error) {
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		return nil, loadError(err, "teacher")
	}
	records, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, internalError(err, "failed to list availability")
	}
	return records, nil
}

// Set upserts the availability of a teacher for one slot.
func (s *AvailabilityService) Set(ctx context.Context, req SetAvailabilityRequest) (*models.Availability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid availability payload")
	}
	if _, err := s.teachers.FindByID(ctx, req.TeacherID); err != nil {
		return nil, loadError(err, "teacher")
	}

	record := &models.Availability{
		TeacherID: req.TeacherID,
		Day:       req.Day,
		Period:    req.Period,
		Available: req.Available == nil || *req.Available,
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, internalError(err, "failed to save availability")
	}
	return record, nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/scheduler"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type entryRepository interface {
	List(ctx context.Context, classID string) ([]models.TimetableEntry, error)
	FindByID(ctx context.Context, id string) (*models.TimetableEntry, error)
	Create(ctx context.Context, entry *models.TimetableEntry) error
	Update(ctx context.Context, entry *models.TimetableEntry) error
	Delete(ctx context.Context, id string) error
}

type availabilityReader interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Availability, error)
}

// CreateTimetableEntryRequest places a lesson in a class slot. An entry already
// holding that class slot is overwritten.
type CreateTimetableEntryRequest struct {
	ClassID   string        `json:"class_id" validate:"required"`
	TeacherID string        `json:"teacher_id" validate:"required"`
	SubjectID string        `json:"subject_id" validate:"required"`
	Day       models.Day    `json:"day" validate:"required,timetable_day"`
	Period    models.Period `json:"period" validate:"required,timetable_period"`
}

// UpdateTimetableEntryRequest represents a partial entry update.
type UpdateTimetableEntryRequest struct {
	ClassID   *string        `json:"class_id" validate:"omitempty,min=1"`
	TeacherID *string        `json:"teacher_id" validate:"omitempty,min=1"`
	SubjectID *string        `json:"subject_id" validate:"omitempty,min=1"`
	Day       *models.Day    `json:"day" validate:"omitempty,timetable_day"`
	Period    *models.Period `json:"period" validate:"omitempty,timetable_period"`
}

// TimetableEntryService manages manually edited timetable entries. Every write
// is checked for qualification, availability and teacher double-booking.
type TimetableEntryService struct {
	entries      entryRepository
	classes      classFinder
	teachers     teacherFinder
	subjects     subjectFinder
	availability availabilityReader
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewTimetableEntryService constructs a TimetableEntryService.
func NewTimetableEntryService(
	entries entryRepository,
	classes classFinder,
	teachers teacherFinder,
	subjects subjectFinder,
	availability availabilityReader,
	validate *validator.Validate,
	logger *zap.Logger,
) *TimetableEntryService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableEntryService{
		entries:      entries,
		classes:      classes,
		teachers:     teachers,
		subjects:     subjects,
		availability: availability,
		validator:    validate,
		logger:       logger,
	}
}

// List returns entries, optionally for one class.
func (s *TimetableEntryService) List(ctx context.Context, classID string) ([]models.TimetableEntry, error) {
	entries, err := s.entries.List(ctx, classID)
	if err != nil {
		return nil, internalError(err, "failed to list timetable entries")
	}
	return entries, nil
}

// Get returns one entry.
func (s *TimetableEntryService) Get(ctx context.Context, id string) (*models.TimetableEntry, error) {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "timetable entry")
	}
	return entry, nil
}

// Create validates and stores an entry, replacing whatever held the class slot.
func (s *TimetableEntryService) Create(ctx context.Context, req CreateTimetableEntryRequest) (*models.TimetableEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid timetable entry payload")
	}

	entry := &models.TimetableEntry{
		ClassID:   req.ClassID,
		TeacherID: req.TeacherID,
		SubjectID: req.SubjectID,
		Day:       req.Day,
		Period:    req.Period,
	}
	replaced := func(other models.TimetableEntry) bool {
		return other.ClassID == entry.ClassID && sameSlot(other, *entry)
	}
	if err := s.check(ctx, *entry, replaced); err != nil {
		return nil, err
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, internalError(err, "failed to create timetable entry")
	}
	return entry, nil
}

// Update validates and applies a partial update. Moving an entry onto a class
// slot held by another entry is rejected.
func (s *TimetableEntryService) Update(ctx context.Context, id string, req UpdateTimetableEntryRequest) (*models.TimetableEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid timetable entry payload")
	}

	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "timetable entry")
	}
	if req.ClassID != nil {
		entry.ClassID = *req.ClassID
	}
	if req.TeacherID != nil {
		entry.TeacherID = *req.TeacherID
	}
	if req.SubjectID != nil {
		entry.SubjectID = *req.SubjectID
	}
	if req.Day != nil {
		entry.Day = *req.Day
	}
	if req.Period != nil {
		entry.Period = *req.Period
	}

	self := func(other models.TimetableEntry) bool { return other.ID == id }
	if err := s.check(ctx, *entry, self); err != nil {
		return nil, err
	}

	classEntries, err := s.entries.List(ctx, entry.ClassID)
	if err != nil {
		return nil, internalError(err, "failed to load class timetable")
	}
	if lo.ContainsBy(classEntries, func(other models.TimetableEntry) bool { return other.ID != id && sameSlot(other, *entry) }) {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("class already has a lesson on %s %s", entry.Day, entry.Period))
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, internalError(err, "failed to update timetable entry")
	}
	return entry, nil
}

// Delete removes an entry.
func (s *TimetableEntryService) Delete(ctx context.Context, id string) error {
	if _, err := s.entries.FindByID(ctx, id); err != nil {
		return loadError(err, "timetable entry")
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete timetable entry")
	}
	return nil
}

// check enforces the manual entry rules. Entries matched by ignore do not count
// as double-bookings.
func (s *TimetableEntryService) check(ctx context.Context, entry models.TimetableEntry, ignore func(models.TimetableEntry) bool) error {
	if _, err := s.classes.FindByID(ctx, entry.ClassID); err != nil {
		return referenceError(err, "class")
	}
	subject, err := s.subjects.FindByID(ctx, entry.SubjectID)
	if err != nil {
		return referenceError(err, "subject")
	}
	teacher, err := s.teachers.FindByID(ctx, entry.TeacherID)
	if err != nil {
		return referenceError(err, "teacher")
	}

	if !teacher.CanTeach(subject.ID) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is not qualified to teach %s", teacher.Name, subject.Name))
	}

	records, err := s.availability.ListByTeacher(ctx, teacher.ID)
	if err != nil {
		return internalError(err, "failed to load teacher availability")
	}
	slot := scheduler.Slot{Day: entry.Day, Period: entry.Period}
	if scheduler.NewAvailabilityIndex(records).Unavailable(teacher.ID, slot) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is not available on %s %s", teacher.Name, entry.Day, entry.Period))
	}

	all, err := s.entries.List(ctx, "")
	if err != nil {
		return internalError(err, "failed to load timetable")
	}
	busy := lo.ContainsBy(all, func(other models.TimetableEntry) bool {
		return other.TeacherID == teacher.ID && sameSlot(other, entry) && !ignore(other)
	})
	if busy {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is already teaching on %s %s", teacher.Name, entry.Day, entry.Period))
	}
	return nil
}

func sameSlot(a, b models.TimetableEntry) bool {
	return a.Day == b.Day && a.Period == b.Period
}

// referenceError reports an unknown referenced entity as a validation failure.
func referenceError(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrValidation, resource+" not found")
	}
	return loadError(err, resource)
}

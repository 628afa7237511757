package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/scheduler"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type generatedEntryStore interface {
	Create(ctx context.Context, entry *models.TimetableEntry) error
	Clear(ctx context.Context) error
}

// GenerateTimetableRequest optionally overrides persisted requirements for one
// run. A class present in the override replaces all of its requirements.
type GenerateTimetableRequest struct {
	Requirements map[string]map[string]int `json:"requirements" validate:"omitempty,dive,dive,gte=0,lte=40"`
}

// GenerateTimetableResponse summarises a generation run.
type GenerateTimetableResponse struct {
	EntriesCreated int `json:"entries_created"`
	Requested      int `json:"requested_periods"`
	Unfilled       int `json:"unfilled_periods"`
}

// TimetableService regenerates the whole timetable.
type TimetableService struct {
	sources   Sources
	entries   generatedEntryStore
	generator *scheduler.Generator
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewTimetableService constructs a TimetableService. A nil random source draws
// from the process-wide generator.
func NewTimetableService(sources Sources, entries generatedEntryStore, random scheduler.RandomSource, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		sources:   sources,
		entries:   entries,
		generator: scheduler.NewGenerator(random),
		validator: validate,
		metrics:   metrics,
		logger:    logger,
	}
}

// Generate replaces every timetable entry with a freshly generated plan. A
// failed precondition leaves stored entries untouched.
func (s *TimetableService) Generate(ctx context.Context, req GenerateTimetableRequest) (*GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid requirement override")
	}
	start := time.Now()

	snap, err := s.sources.load(ctx)
	if err != nil {
		return nil, err
	}

	input := scheduler.Input{
		Teachers:     snap.teachers,
		Classes:      snap.classes,
		Subjects:     snap.subjects,
		Requirements: scheduler.NewRequirements(snap.requirements).Override(req.Requirements),
		Availability: scheduler.NewAvailabilityIndex(snap.availability),
	}
	if err := scheduler.Precheck(input); err != nil {
		return nil, preconditionError(err)
	}

	if err := s.entries.Clear(ctx); err != nil {
		return nil, internalError(err, "failed to clear timetable")
	}

	plan, err := s.generator.Generate(input)
	if err != nil {
		return nil, preconditionError(err)
	}

	for i := range plan.Entries {
		if err := s.entries.Create(ctx, &plan.Entries[i]); err != nil {
			return nil, internalError(err, "failed to store generated entry")
		}
	}

	elapsed := time.Since(start)
	s.metrics.RecordGeneration(len(plan.Entries), plan.Unfilled, elapsed)
	s.logger.Info("timetable generated",
		zap.Int("entries_created", len(plan.Entries)),
		zap.Int("requested", plan.Requested),
		zap.Int("unfilled", plan.Unfilled),
		zap.Duration("duration", elapsed),
	)

	return &GenerateTimetableResponse{
		EntriesCreated: len(plan.Entries),
		Requested:      plan.Requested,
		Unfilled:       plan.Unfilled,
	}, nil
}

func preconditionError(err error) error {
	if errors.Is(err, scheduler.ErrPrecondition) {
		return appErrors.Wrap(err, appErrors.ErrPreconditionFailed.Code, appErrors.ErrPreconditionFailed.Status, err.Error())
	}
	return internalError(err, "failed to generate timetable")
}

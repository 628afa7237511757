package service

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

type seedTeacherStore interface {
	List(ctx context.Context) ([]models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
}

type seedClassStore interface {
	Create(ctx context.Context, class *models.Class) error
}

type seedSubjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
}

type seedRequirementStore interface {
	Upsert(ctx context.Context, requirement *models.ClassSubjectRequirement) error
}

type seedAvailabilityStore interface {
	Upsert(ctx context.Context, availability *models.Availability) error
}

// SeedService loads a small demo school into empty storage.
type SeedService struct {
	teachers     seedTeacherStore
	classes      seedClassStore
	subjects     seedSubjectStore
	requirements seedRequirementStore
	availability seedAvailabilityStore
	logger       *zap.Logger
}

// NewSeedService constructs a SeedService.
func NewSeedService(teachers seedTeacherStore, classes seedClassStore, subjects seedSubjectStore, requirements seedRequirementStore, availability seedAvailabilityStore, logger *zap.Logger) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{
		teachers:     teachers,
		classes:      classes,
		subjects:     subjects,
		requirements: requirements,
		availability: availability,
		logger:       logger,
	}
}

// Seed inserts the demo data set. It reports false without writing anything
// when teachers already exist.
func (s *SeedService) Seed(ctx context.Context) (bool, error) {
	existing, err := s.teachers.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list teachers: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("demo seed skipped, storage not empty")
		return false, nil
	}

	subjects := []*models.Subject{
		{Name: "Mathematics", Color: "#2563eb"},
		{Name: "Physics", Color: "#16a34a"},
		{Name: "English", Color: "#f59e0b"},
		{Name: "History", Color: "#dc2626"},
	}
	for _, subject := range subjects {
		if err := s.subjects.Create(ctx, subject); err != nil {
			return false, fmt.Errorf("seed subject %s: %w", subject.Name, err)
		}
	}
	math, physics, english, history := subjects[0].ID, subjects[1].ID, subjects[2].ID, subjects[3].ID

	teachers := []*models.Teacher{
		{Name: "Ana Pratiwi", Email: "ana@school.test", Subjects: pq.StringArray{math, physics}},
		{Name: "Budi Santoso", Email: "budi@school.test", Subjects: pq.StringArray{english}},
		{Name: "Citra Lestari", Email: "citra@school.test", Subjects: pq.StringArray{history, english}},
		{Name: "Dedi Kurniawan", Email: "dedi@school.test", Subjects: pq.StringArray{math}},
	}
	for _, teacher := range teachers {
		if err := s.teachers.Create(ctx, teacher); err != nil {
			return false, fmt.Errorf("seed teacher %s: %w", teacher.Name, err)
		}
	}

	classes := []*models.Class{
		{Name: "10A", Grade: "Grade 10", StudentCount: 32},
		{Name: "10B", Grade: "Grade 10", StudentCount: 30},
		{Name: "11A", Grade: "Grade 11", StudentCount: 28},
	}
	for _, class := range classes {
		if err := s.classes.Create(ctx, class); err != nil {
			return false, fmt.Errorf("seed class %s: %w", class.Name, err)
		}
		for subjectID, periods := range map[string]int{math: 5, physics: 3, english: 4, history: 2} {
			req := &models.ClassSubjectRequirement{ClassID: class.ID, SubjectID: subjectID, PeriodsPerWeek: periods}
			if err := s.requirements.Upsert(ctx, req); err != nil {
				return false, fmt.Errorf("seed requirement for %s: %w", class.Name, err)
			}
		}
	}

	// Citra does not teach on Friday afternoons.
	for _, period := range models.Periods[4:] {
		slot := &models.Availability{TeacherID: teachers[2].ID, Day: models.Friday, Period: period, Available: false}
		if err := s.availability.Upsert(ctx, slot); err != nil {
			return false, fmt.Errorf("seed availability: %w", err)
		}
	}

	s.logger.Info("demo data seeded",
		zap.Int("teachers", len(teachers)),
		zap.Int("classes", len(classes)),
		zap.Int("subjects", len(subjects)),
	)
	return true, nil
}

package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

// Missing rows are reported as sql.ErrNoRows by every implementation.

// TeacherStore persists teachers. Delete also removes the teacher's
// availability records and timetable entries.
type TeacherStore interface {
	List(ctx context.Context) ([]models.Teacher, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id string) error
}

// ClassStore persists classes. Delete also removes the class's requirements
// and timetable entries.
type ClassStore interface {
	List(ctx context.Context) ([]models.Class, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
}

// SubjectStore persists subjects. Delete also removes requirements and
// timetable entries referencing the subject.
type SubjectStore interface {
	List(ctx context.Context) ([]models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
}

// AvailabilityStore keeps at most one record per (teacher, day, period).
type AvailabilityStore interface {
	List(ctx context.Context) ([]models.Availability, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Availability, error)
	Upsert(ctx context.Context, availability *models.Availability) error
}

// RequirementStore keeps at most one record per (class, subject).
type RequirementStore interface {
	List(ctx context.Context) ([]models.ClassSubjectRequirement, error)
	ListByClass(ctx context.Context, classID string) ([]models.ClassSubjectRequirement, error)
	FindByID(ctx context.Context, id string) (*models.ClassSubjectRequirement, error)
	Upsert(ctx context.Context, requirement *models.ClassSubjectRequirement) error
	Delete(ctx context.Context, id string) error
}

// TimetableStore keeps at most one entry per (class, day, period). Create
// overwrites the entry already holding that slot and adopts its id.
type TimetableStore interface {
	List(ctx context.Context, classID string) ([]models.TimetableEntry, error)
	FindByID(ctx context.Context, id string) (*models.TimetableEntry, error)
	Create(ctx context.Context, entry *models.TimetableEntry) error
	Update(ctx context.Context, entry *models.TimetableEntry) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// Store bundles one implementation of every persistence contract.
type Store struct {
	Teachers     TeacherStore
	Classes      ClassStore
	Subjects     SubjectStore
	Availability AvailabilityStore
	Requirements RequirementStore
	Timetable    TimetableStore

	ping  func(ctx context.Context) error
	close func() error
}

// Ping reports whether the backing storage is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backing storage.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewMemoryStore returns a Store backed by process memory.
func NewMemoryStore() *Store {
	state := newMemoryState()
	return &Store{
		Teachers:     &memoryTeachers{state: state},
		Classes:      &memoryClasses{state: state},
		Subjects:     &memorySubjects{state: state},
		Availability: &memoryAvailability{state: state},
		Requirements: &memoryRequirements{state: state},
		Timetable:    &memoryTimetable{state: state},
	}
}

// NewPostgresStore returns a Store backed by the sqlx repositories.
func NewPostgresStore(db *sqlx.DB) *Store {
	return &Store{
		Teachers:     NewTeacherRepository(db),
		Classes:      NewClassRepository(db),
		Subjects:     NewSubjectRepository(db),
		Availability: NewAvailabilityRepository(db),
		Requirements: NewRequirementRepository(db),
		Timetable:    NewTimetableRepository(db),
		ping:         db.PingContext,
		close:        db.Close,
	}
}

package repository

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

// table keeps rows in insertion order; replacing a row keeps its position.
type table[T any] struct {
	order []string
	rows  map[string]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) put(id string, row T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) removeWhere(match func(T) bool) {
	kept := t.order[:0]
	for _, id := range t.order {
		if match(t.rows[id]) {
			delete(t.rows, id)
			continue
		}
		kept = append(kept, id)
	}
	t.order = kept
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	for _, id := range t.order {
		if row := t.rows[id]; match(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) filter(match func(T) bool) []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		if row := t.rows[id]; match == nil || match(row) {
			out = append(out, row)
		}
	}
	return out
}

type memoryState struct {
	mu           sync.RWMutex
	teachers     *table[models.Teacher]
	classes      *table[models.Class]
	subjects     *table[models.Subject]
	availability *table[models.Availability]
	requirements *table[models.ClassSubjectRequirement]
	entries      *table[models.TimetableEntry]
}

func newMemoryState() *memoryState {
	return &memoryState{
		teachers:     newTable[models.Teacher](),
		classes:      newTable[models.Class](),
		subjects:     newTable[models.Subject](),
		availability: newTable[models.Availability](),
		requirements: newTable[models.ClassSubjectRequirement](),
		entries:      newTable[models.TimetableEntry](),
	}
}

func stamp(id *string, createdAt, updatedAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

func cloneTeacher(t models.Teacher) models.Teacher {
	t.Subjects = append(pq.StringArray{}, t.Subjects...)
	return t
}

type memoryTeachers struct{ state *memoryState }

func (m *memoryTeachers) List(ctx context.Context) ([]models.Teacher, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	teachers := m.state.teachers.filter(nil)
	for i := range teachers {
		teachers[i] = cloneTeacher(teachers[i])
	}
	return teachers, nil
}

func (m *memoryTeachers) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	teacher, ok := m.state.teachers.get(id)
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := cloneTeacher(teacher)
	return &cp, nil
}

func (m *memoryTeachers) Create(ctx context.Context, teacher *models.Teacher) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	stamp(&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt)
	m.state.teachers.put(teacher.ID, cloneTeacher(*teacher))
	return nil
}

func (m *memoryTeachers) Update(ctx context.Context, teacher *models.Teacher) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if _, ok := m.state.teachers.get(teacher.ID); !ok {
		return sql.ErrNoRows
	}
	teacher.UpdatedAt = time.Now().UTC()
	m.state.teachers.put(teacher.ID, cloneTeacher(*teacher))
	return nil
}

func (m *memoryTeachers) Delete(ctx context.Context, id string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if !m.state.teachers.remove(id) {
		return sql.ErrNoRows
	}
	m.state.availability.removeWhere(func(a models.Availability) bool { return a.TeacherID == id })
	m.state.entries.removeWhere(func(e models.TimetableEntry) bool { return e.TeacherID == id })
	return nil
}

type memoryClasses struct{ state *memoryState }

func (m *memoryClasses) List(ctx context.Context) ([]models.Class, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	return m.state.classes.filter(nil), nil
}

func (m *memoryClasses) FindByID(ctx context.Context, id string) (*models.Class, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	class, ok := m.state.classes.get(id)
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &class, nil
}

func (m *memoryClasses) Create(ctx context.Context, class *models.Class) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	stamp(&class.ID, &class.CreatedAt, &class.UpdatedAt)
	m.state.classes.put(class.ID, *class)
	return nil
}

func (m *memoryClasses) Update(ctx context.Context, class *models.Class) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if _, ok := m.state.classes.get(class.ID); !ok {
		return sql.ErrNoRows
	}
	class.UpdatedAt = time.Now().UTC()
	m.state.classes.put(class.ID, *class)
	return nil
}

func (m *memoryClasses) Delete(ctx context.Context, id string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if !m.state.classes.remove(id) {
		return sql.ErrNoRows
	}
	m.state.requirements.removeWhere(func(r models.ClassSubjectRequirement) bool { return r.ClassID == id })
	m.state.entries.removeWhere(func(e models.TimetableEntry) bool { return e.ClassID == id })
	return nil
}

type memorySubjects struct{ state *memoryState }

func (m *memorySubjects) List(ctx context.Context) ([]models.Subject, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	return m.state.subjects.filter(nil), nil
}

func (m *memorySubjects) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	subject, ok := m.state.subjects.get(id)
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &subject, nil
}

func (m *memorySubjects) Create(ctx context.Context, subject *models.Subject) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	stamp(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)
	m.state.subjects.put(subject.ID, *subject)
	return nil
}

func (m *memorySubjects) Update(ctx context.Context, subject *models.Subject) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if _, ok := m.state.subjects.get(subject.ID); !ok {
		return sql.ErrNoRows
	}
	subject.UpdatedAt = time.Now().UTC()
	m.state.subjects.put(subject.ID, *subject)
	return nil
}

func (m *memorySubjects) Delete(ctx context.Context, id string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if !m.state.subjects.remove(id) {
		return sql.ErrNoRows
	}
	m.state.requirements.removeWhere(func(r models.ClassSubjectRequirement) bool { return r.SubjectID == id })
	m.state.entries.removeWhere(func(e models.TimetableEntry) bool { return e.SubjectID == id })
	return nil
}

type memoryAvailability struct{ state *memoryState }

func (m *memoryAvailability) List(ctx context.Context) ([]models.Availability, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	return m.state.availability.filter(nil), nil
}

func (m *memoryAvailability) ListByTeacher(ctx context.Context, teacherID string) ([]models.Availability, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	return m.state.availability.filter(func(a models.Availability) bool { return a.TeacherID == teacherID }), nil
}

func (m *memoryAvailability) Upsert(ctx context.Context, availability *models.Availability) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	existing, ok := m.state.availability.find(func(a models.Availability) bool {
		return a.TeacherID == availability.TeacherID && a.Day == availability.Day && a.Period == availability.Period
	})
	if ok {
		availability.ID = existing.ID
		availability.CreatedAt = existing.CreatedAt
	}
	stamp(&availability.ID, &availability.CreatedAt, &availability.UpdatedAt)
	m.state.availability.put(availability.ID, *availability)
	return nil
}

type memoryRequirements struct{ state *memoryState }

func (m *memoryRequirements) List(ctx context.Context) ([]models.ClassSubjectRequirement, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	return m.state.requirements.filter(nil), nil
}

func (m *memoryRequirements) ListByClass(ctx context.Context, classID string) ([]models.ClassSubjectRequirement, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	return m.state.requirements.filter(func(r models.ClassSubjectRequirement) bool { return r.ClassID == classID }), nil
}

func (m *memoryRequirements) FindByID(ctx context.Context, id string) (*models.ClassSubjectRequirement, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	req, ok := m.state.requirements.get(id)
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &req, nil
}

func (m *memoryRequirements) Upsert(ctx context.Context, requirement *models.ClassSubjectRequirement) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	existing, ok := m.state.requirements.find(func(r models.ClassSubjectRequirement) bool {
		return r.ClassID == requirement.ClassID && r.SubjectID == requirement.SubjectID
	})
	if ok {
		requirement.ID = existing.ID
		requirement.CreatedAt = existing.CreatedAt
	}
	stamp(&requirement.ID, &requirement.CreatedAt, &requirement.UpdatedAt)
	m.state.requirements.put(requirement.ID, *requirement)
	return nil
}

func (m *memoryRequirements) Delete(ctx context.Context, id string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if !m.state.requirements.remove(id) {
		return sql.ErrNoRows
	}
	return nil
}

type memoryTimetable struct{ state *memoryState }

func (m *memoryTimetable) List(ctx context.Context, classID string) ([]models.TimetableEntry, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	if classID == "" {
		return m.state.entries.filter(nil), nil
	}
	return m.state.entries.filter(func(e models.TimetableEntry) bool { return e.ClassID == classID }), nil
}

func (m *memoryTimetable) FindByID(ctx context.Context, id string) (*models.TimetableEntry, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	entry, ok := m.state.entries.get(id)
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &entry, nil
}

func (m *memoryTimetable) Create(ctx context.Context, entry *models.TimetableEntry) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	existing, ok := m.state.entries.find(func(e models.TimetableEntry) bool {
		return e.ClassID == entry.ClassID && e.Day == entry.Day && e.Period == entry.Period
	})
	if ok {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	}
	stamp(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	m.state.entries.put(entry.ID, *entry)
	return nil
}

func (m *memoryTimetable) Update(ctx context.Context, entry *models.TimetableEntry) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if _, ok := m.state.entries.get(entry.ID); !ok {
		return sql.ErrNoRows
	}
	entry.UpdatedAt = time.Now().UTC()
	m.state.entries.put(entry.ID, *entry)
	return nil
}

func (m *memoryTimetable) Delete(ctx context.Context, id string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if !m.state.entries.remove(id) {
		return sql.ErrNoRows
	}
	return nil
}

func (m *memoryTimetable) Clear(ctx context.Context) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	m.state.entries = newTable[models.TimetableEntry]()
	return nil
}

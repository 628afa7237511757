package service

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

func TestTeacherServiceCreateNormalizesSubjects(t *testing.T) {
	f := newFixture()
	svc := NewTeacherService(f.store.Teachers, nil, nil)

	teacher, err := svc.Create(f.ctx, CreateTeacherRequest{
		Name:     "  Ana  ",
		Email:    "ana@school.test",
		Subjects: []string{" math ", "physics", "math"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, teacher.ID)
	assert.Equal(t, "Ana", teacher.Name)
	assert.Equal(t, pq.StringArray{"math", "physics"}, teacher.Subjects)
}

func TestTeacherServiceCreateValidation(t *testing.T) {
	f := newFixture()
	svc := NewTeacherService(f.store.Teachers, nil, nil)

	_, err := svc.Create(f.ctx, CreateTeacherRequest{Name: "Ana", Email: "not-an-email"})
	requireAppError(t, err, appErrors.ErrValidation)
}

func TestTeacherServiceUpdateIsPartial(t *testing.T) {
	f := newFixture()
	svc := NewTeacherService(f.store.Teachers, nil, nil)
	existing := f.teacher(t, "budi", "english")

	name := "Budi Santoso"
	updated, err := svc.Update(f.ctx, existing.ID, UpdateTeacherRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", updated.Name)
	assert.Equal(t, existing.Email, updated.Email)
	assert.Equal(t, pq.StringArray{"english"}, updated.Subjects)
}

func TestTeacherServiceUnknownID(t *testing.T) {
	f := newFixture()
	svc := NewTeacherService(f.store.Teachers, nil, nil)

	_, err := svc.Get(f.ctx, "missing")
	appErr := requireAppError(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "teacher not found", appErr.Message)

	requireAppError(t, svc.Delete(f.ctx, "missing"), appErrors.ErrNotFound)
}

func TestTeacherServiceDeleteCascades(t *testing.T) {
	f := newFixture()
	svc := NewTeacherService(f.store.Teachers, nil, nil)
	math := f.subject(t, "Math")
	class := f.class(t, "10A")
	teacher := f.teacher(t, "ana", math.ID)
	f.unavailable(t, teacher.ID, models.Monday, models.Periods[0])
	f.entry(t, class.ID, teacher.ID, math.ID, models.Tuesday, models.Periods[1])

	require.NoError(t, svc.Delete(f.ctx, teacher.ID))

	availability, err := f.store.Availability.ListByTeacher(f.ctx, teacher.ID)
	require.NoError(t, err)
	assert.Empty(t, availability)
	entries, err := f.store.Timetable.List(f.ctx, "")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

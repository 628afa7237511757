package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

func TestClassServiceCRUD(t *testing.T) {
	f := newFixture()
	svc := NewClassService(f.store.Classes, nil, nil)

	class, err := svc.Create(f.ctx, CreateClassRequest{Name: "10A", Grade: " Grade 10 ", StudentCount: 30})
	require.NoError(t, err)
	assert.Equal(t, "Grade 10", class.Grade)

	grade := "Grade 11"
	updated, err := svc.Update(f.ctx, class.ID, UpdateClassRequest{Grade: &grade})
	require.NoError(t, err)
	assert.Equal(t, "Grade 11", updated.Grade)
	assert.Equal(t, "10A", updated.Name)

	_, err = svc.Create(f.ctx, CreateClassRequest{Name: "", Grade: "Grade 10"})
	requireAppError(t, err, appErrors.ErrValidation)

	_, err = svc.Create(f.ctx, CreateClassRequest{Name: "10C"})
	requireAppError(t, err, appErrors.ErrValidation)

	bad := ""
	_, err = svc.Update(f.ctx, class.ID, UpdateClassRequest{Grade: &bad})
	requireAppError(t, err, appErrors.ErrValidation)

	require.NoError(t, svc.Delete(f.ctx, class.ID))
	_, err = svc.Get(f.ctx, class.ID)
	requireAppError(t, err, appErrors.ErrNotFound)
}

func TestSubjectServiceRejectsBadColor(t *testing.T) {
	f := newFixture()
	svc := NewSubjectService(f.store.Subjects, nil, nil)

	_, err := svc.Create(f.ctx, CreateSubjectRequest{Name: "Math", Color: "blue"})
	requireAppError(t, err, appErrors.ErrValidation)

	subject, err := svc.Create(f.ctx, CreateSubjectRequest{Name: "Math", Color: "#2563eb"})
	require.NoError(t, err)
	assert.Equal(t, "#2563eb", subject.Color)
}

func TestSubjectServiceDeleteCascades(t *testing.T) {
	f := newFixture()
	svc := NewSubjectService(f.store.Subjects, nil, nil)
	math := f.subject(t, "Math")
	class := f.class(t, "10A")
	teacher := f.teacher(t, "ana", math.ID)
	f.requirement(t, class.ID, math.ID, 3)
	f.entry(t, class.ID, teacher.ID, math.ID, models.Monday, models.Periods[0])

	require.NoError(t, svc.Delete(f.ctx, math.ID))

	reqs, err := f.store.Requirements.ListByClass(f.ctx, class.ID)
	require.NoError(t, err)
	assert.Empty(t, reqs)
	entries, err := f.store.Timetable.List(f.ctx, class.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRequirementServiceUpsert(t *testing.T) {
	f := newFixture()
	svc := NewRequirementService(f.store.Requirements, f.store.Classes, f.store.Subjects, nil, nil)
	math := f.subject(t, "Math")
	class := f.class(t, "10A")

	first, err := svc.Upsert(f.ctx, class.ID, UpsertRequirementRequest{SubjectID: math.ID, PeriodsPerWeek: 3})
	require.NoError(t, err)
	second, err := svc.Upsert(f.ctx, class.ID, UpsertRequirementRequest{SubjectID: math.ID, PeriodsPerWeek: 5})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	reqs, err := svc.ListByClass(f.ctx, class.ID)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, 5, reqs[0].PeriodsPerWeek)

	require.NoError(t, svc.Delete(f.ctx, first.ID))
	requireAppError(t, svc.Delete(f.ctx, first.ID), appErrors.ErrNotFound)
}

func TestRequirementServiceReferences(t *testing.T) {
	f := newFixture()
	svc := NewRequirementService(f.store.Requirements, f.store.Classes, f.store.Subjects, nil, nil)
	math := f.subject(t, "Math")
	class := f.class(t, "10A")

	_, err := svc.Upsert(f.ctx, "missing", UpsertRequirementRequest{SubjectID: math.ID, PeriodsPerWeek: 1})
	requireAppError(t, err, appErrors.ErrNotFound)

	_, err = svc.Upsert(f.ctx, class.ID, UpsertRequirementRequest{SubjectID: "missing", PeriodsPerWeek: 1})
	requireAppError(t, err, appErrors.ErrValidation)

	_, err = svc.Upsert(f.ctx, class.ID, UpsertRequirementRequest{SubjectID: math.ID, PeriodsPerWeek: -1})
	requireAppError(t, err, appErrors.ErrValidation)
}

func TestAvailabilityServiceSet(t *testing.T) {
	f := newFixture()
	svc := NewAvailabilityService(f.store.Availability, f.store.Teachers, nil, nil)
	teacher := f.teacher(t, "ana")

	record, err := svc.Set(f.ctx, SetAvailabilityRequest{TeacherID: teacher.ID, Day: models.Monday, Period: models.Periods[0]})
	require.NoError(t, err)
	assert.True(t, record.Available)

	off := false
	again, err := svc.Set(f.ctx, SetAvailabilityRequest{TeacherID: teacher.ID, Day: models.Monday, Period: models.Periods[0], Available: &off})
	require.NoError(t, err)
	assert.Equal(t, record.ID, again.ID)
	assert.False(t, again.Available)

	records, err := svc.ListByTeacher(f.ctx, teacher.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = svc.Set(f.ctx, SetAvailabilityRequest{TeacherID: teacher.ID, Day: "Saturday", Period: models.Periods[0]})
	requireAppError(t, err, appErrors.ErrValidation)

	_, err = svc.Set(f.ctx, SetAvailabilityRequest{TeacherID: teacher.ID, Day: models.Monday, Period: "7:00-8:00"})
	requireAppError(t, err, appErrors.ErrValidation)

	_, err = svc.ListByTeacher(f.ctx, "missing")
	requireAppError(t, err, appErrors.ErrNotFound)
}

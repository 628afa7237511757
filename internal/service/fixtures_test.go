package service

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/repository"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type fixture struct {
	ctx   context.Context
	store *repository.Store
}

func newFixture() *fixture {
	return &fixture{ctx: context.Background(), store: repository.NewMemoryStore()}
}

func (f *fixture) sources() Sources {
	return Sources{
		Teachers:     f.store.Teachers,
		Classes:      f.store.Classes,
		Subjects:     f.store.Subjects,
		Requirements: f.store.Requirements,
		Availability: f.store.Availability,
	}
}

func (f *fixture) subject(t *testing.T, name string) *models.Subject {
	t.Helper()
	subject := &models.Subject{Name: name}
	require.NoError(t, f.store.Subjects.Create(f.ctx, subject))
	return subject
}

func (f *fixture) teacher(t *testing.T, name string, subjectIDs ...string) *models.Teacher {
	t.Helper()
	teacher := &models.Teacher{Name: name, Email: name + "@school.test", Subjects: pq.StringArray(subjectIDs)}
	require.NoError(t, f.store.Teachers.Create(f.ctx, teacher))
	return teacher
}

func (f *fixture) class(t *testing.T, name string) *models.Class {
	t.Helper()
	class := &models.Class{Name: name, Grade: "Grade 10"}
	require.NoError(t, f.store.Classes.Create(f.ctx, class))
	return class
}

func (f *fixture) requirement(t *testing.T, classID, subjectID string, periods int) {
	t.Helper()
	req := &models.ClassSubjectRequirement{ClassID: classID, SubjectID: subjectID, PeriodsPerWeek: periods}
	require.NoError(t, f.store.Requirements.Upsert(f.ctx, req))
}

func (f *fixture) unavailable(t *testing.T, teacherID string, day models.Day, period models.Period) {
	t.Helper()
	slot := &models.Availability{TeacherID: teacherID, Day: day, Period: period, Available: false}
	require.NoError(t, f.store.Availability.Upsert(f.ctx, slot))
}

func (f *fixture) entry(t *testing.T, classID, teacherID, subjectID string, day models.Day, period models.Period) *models.TimetableEntry {
	t.Helper()
	entry := &models.TimetableEntry{ClassID: classID, TeacherID: teacherID, SubjectID: subjectID, Day: day, Period: period}
	require.NoError(t, f.store.Timetable.Create(f.ctx, entry))
	return entry
}

func requireAppError(t *testing.T, err error, want *appErrors.Error) *appErrors.Error {
	t.Helper()
	require.Error(t, err)
	require.True(t, appErrors.Is(err, want), "expected %s, got %v", want.Code, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, want.Status, appErr.Status)
	return appErr
}

func ctx() context.Context {
	return context.Background()
}

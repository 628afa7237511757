package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type entryFixture struct {
	*fixture
	svc     *TimetableEntryService
	math    *models.Subject
	physics *models.Subject
	ana     *models.Teacher
	budi    *models.Teacher
	classA  *models.Class
	classB  *models.Class
}

func newEntryFixture(t *testing.T) *entryFixture {
	f := newFixture()
	ef := &entryFixture{fixture: f}
	ef.math = f.subject(t, "Math")
	ef.physics = f.subject(t, "Physics")
	ef.ana = f.teacher(t, "Ana", ef.math.ID)
	ef.budi = f.teacher(t, "Budi", ef.math.ID, ef.physics.ID)
	ef.classA = f.class(t, "10A")
	ef.classB = f.class(t, "10B")
	ef.svc = NewTimetableEntryService(f.store.Timetable, f.store.Classes, f.store.Teachers, f.store.Subjects, f.store.Availability, nil, nil)
	return ef
}

func (ef *entryFixture) request(classID, teacherID, subjectID string, day models.Day, period models.Period) CreateTimetableEntryRequest {
	return CreateTimetableEntryRequest{ClassID: classID, TeacherID: teacherID, SubjectID: subjectID, Day: day, Period: period}
}

func TestTimetableEntryServiceCreate(t *testing.T) {
	ef := newEntryFixture(t)

	entry, err := ef.svc.Create(ef.ctx, ef.request(ef.classA.ID, ef.ana.ID, ef.math.ID, models.Monday, models.Periods[0]))
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)

	got, err := ef.svc.Get(ef.ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, ef.ana.ID, got.TeacherID)
}

func TestTimetableEntryServiceRejectsUnqualifiedTeacher(t *testing.T) {
	ef := newEntryFixture(t)

	_, err := ef.svc.Create(ef.ctx, ef.request(ef.classA.ID, ef.ana.ID, ef.physics.ID, models.Monday, models.Periods[0]))
	appErr := requireAppError(t, err, appErrors.ErrValidation)
	assert.Contains(t, appErr.Message, "not qualified")
}

func TestTimetableEntryServiceRejectsUnavailableTeacher(t *testing.T) {
	ef := newEntryFixture(t)
	ef.unavailable(t, ef.ana.ID, models.Monday, models.Periods[0])

	_, err := ef.svc.Create(ef.ctx, ef.request(ef.classA.ID, ef.ana.ID, ef.math.ID, models.Monday, models.Periods[0]))
	appErr := requireAppError(t, err, appErrors.ErrValidation)
	assert.Contains(t, appErr.Message, "not available")

	_, err = ef.svc.Create(ef.ctx, ef.request(ef.classA.ID, ef.ana.ID, ef.math.ID, models.Monday, models.Periods[1]))
	require.NoError(t, err)
}

func TestTimetableEntryServiceRejectsDoubleBooking(t *testing.T) {
	ef := newEntryFixture(t)
	_, err := ef.svc.Create(ef.ctx, ef.request(ef.classA.ID, ef.ana.ID, ef.math.ID, models.Monday, models.Periods[0]))
	require.NoError(t, err)

	_, err = ef.svc.Create(ef.ctx, ef.request(ef.classB.ID, ef.ana.ID, ef.math.ID, models.Monday, models.Periods[0]))
	appErr := requireAppError(t, err, appErrors.ErrValidation)
	assert.Contains(t, appErr.Message, "already teaching")
}

func TestTimetableEntryServiceCreateReplacesClassSlot(t *testing.T) {
	ef := newEntryFixture(t)
	first, err := ef.svc.Create(ef.ctx, ef.request(ef.classA.ID, ef.ana.ID, ef.math.ID, models.Monday, models.Periods[0]))
	require.NoError(t, err)

	second, err := ef.svc.Create(ef.ctx, ef.request(ef.classA.ID, ef.budi.ID, ef.physics.ID, models.Monday, models.Periods[0]))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	entries, err := ef.svc.List(ef.ctx, ef.classA.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ef.budi.ID, entries[0].TeacherID)

	_, err = ef.svc.Create(ef.ctx, ef.request(ef.classA.ID, ef.budi.ID, ef.math.ID, models.Monday, models.Periods[0]))
	require.NoError(t, err, "the entry being replaced does not count as a booking")
}

func TestTimetableEntryServiceUnknownReferences(t *testing.T) {
	ef := newEntryFixture(t)

	_, err := ef.svc.Create(ef.ctx, ef.request("missing", ef.ana.ID, ef.math.ID, models.Monday, models.Periods[0]))
	requireAppError(t, err, appErrors.ErrValidation)
	_, err = ef.svc.Create(ef.ctx, ef.request(ef.classA.ID, "missing", ef.math.ID, models.Monday, models.Periods[0]))
	requireAppError(t, err, appErrors.ErrValidation)
	_, err = ef.svc.Create(ef.ctx, ef.request(ef.classA.ID, ef.ana.ID, "missing", models.Monday, models.Periods[0]))
	requireAppError(t, err, appErrors.ErrValidation)
	_, err = ef.svc.Create(ef.ctx, ef.request(ef.classA.ID, ef.ana.ID, ef.math.ID, "Sunday", models.Periods[0]))
	requireAppError(t, err, appErrors.ErrValidation)
}

func TestTimetableEntryServiceUpdate(t *testing.T) {
	ef := newEntryFixture(t)
	entry, err := ef.svc.Create(ef.ctx, ef.request(ef.classA.ID, ef.ana.ID, ef.math.ID, models.Monday, models.Periods[0]))
	require.NoError(t, err)
	other, err := ef.svc.Create(ef.ctx, ef.request(ef.classA.ID, ef.budi.ID, ef.physics.ID, models.Monday, models.Periods[1]))
	require.NoError(t, err)

	subject := ef.math.ID
	updated, err := ef.svc.Update(ef.ctx, entry.ID, UpdateTimetableEntryRequest{SubjectID: &subject})
	require.NoError(t, err, "an entry never collides with itself")
	assert.Equal(t, entry.ID, updated.ID)

	period := models.Periods[1]
	_, err = ef.svc.Update(ef.ctx, entry.ID, UpdateTimetableEntryRequest{Period: &period})
	requireAppError(t, err, appErrors.ErrConflict)

	teacher := ef.ana.ID
	_, err = ef.svc.Update(ef.ctx, other.ID, UpdateTimetableEntryRequest{TeacherID: &teacher, SubjectID: &subject, Period: &models.Periods[0]})
	requireAppError(t, err, appErrors.ErrValidation)

	_, err = ef.svc.Update(ef.ctx, "missing", UpdateTimetableEntryRequest{})
	requireAppError(t, err, appErrors.ErrNotFound)
}

func TestTimetableEntryServiceDelete(t *testing.T) {
	ef := newEntryFixture(t)
	entry, err := ef.svc.Create(ef.ctx, ef.request(ef.classA.ID, ef.ana.ID, ef.math.ID, models.Monday, models.Periods[0]))
	require.NoError(t, err)

	require.NoError(t, ef.svc.Delete(ef.ctx, entry.ID))
	requireAppError(t, ef.svc.Delete(ef.ctx, entry.ID), appErrors.ErrNotFound)
}

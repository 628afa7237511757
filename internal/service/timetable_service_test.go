package service

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/scheduler"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

func newTimetableService(f *fixture, metrics *MetricsService) *TimetableService {
	return NewTimetableService(f.sources(), f.store.Timetable, scheduler.NewSeededSource(7), nil, metrics, nil)
}

func TestTimetableServiceGenerate(t *testing.T) {
	f := newFixture()
	math := f.subject(t, "Math")
	teacher := f.teacher(t, "Ana", math.ID)
	class := f.class(t, "10A")
	f.requirement(t, class.ID, math.ID, 3)
	metrics := NewMetricsService()

	resp, err := newTimetableService(f, metrics).Generate(f.ctx, GenerateTimetableRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.EntriesCreated)
	assert.Equal(t, 3, resp.Requested)
	assert.Zero(t, resp.Unfilled)

	entries, err := f.store.Timetable.List(f.ctx, class.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, entry := range entries {
		assert.Equal(t, teacher.ID, entry.TeacherID)
		assert.Equal(t, math.ID, entry.SubjectID)
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.generationRuns))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.generationEntries))
}

func TestTimetableServiceGenerateReplacesExistingEntries(t *testing.T) {
	f := newFixture()
	math := f.subject(t, "Math")
	physics := f.subject(t, "Physics")
	teacher := f.teacher(t, "Ana", math.ID, physics.ID)
	class := f.class(t, "10A")
	f.requirement(t, class.ID, math.ID, 2)
	f.entry(t, class.ID, teacher.ID, physics.ID, models.Friday, models.Periods[7])

	resp, err := newTimetableService(f, nil).Generate(f.ctx, GenerateTimetableRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.EntriesCreated)

	entries, err := f.store.Timetable.List(f.ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, math.ID, entry.SubjectID)
	}
}

func TestTimetableServiceGenerateOverride(t *testing.T) {
	f := newFixture()
	math := f.subject(t, "Math")
	physics := f.subject(t, "Physics")
	f.teacher(t, "Ana", math.ID, physics.ID)
	classA := f.class(t, "10A")
	classB := f.class(t, "10B")
	f.requirement(t, classA.ID, math.ID, 4)
	f.requirement(t, classB.ID, math.ID, 2)

	resp, err := newTimetableService(f, nil).Generate(f.ctx, GenerateTimetableRequest{
		Requirements: map[string]map[string]int{classA.ID: {physics.ID: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.EntriesCreated)

	entriesA, err := f.store.Timetable.List(f.ctx, classA.ID)
	require.NoError(t, err)
	require.Len(t, entriesA, 1)
	assert.Equal(t, physics.ID, entriesA[0].SubjectID)

	entriesB, err := f.store.Timetable.List(f.ctx, classB.ID)
	require.NoError(t, err)
	assert.Len(t, entriesB, 2)
}

func TestTimetableServiceGeneratePreconditionLeavesEntries(t *testing.T) {
	f := newFixture()
	math := f.subject(t, "Math")
	teacher := f.teacher(t, "Ana", math.ID)
	class := f.class(t, "10A")
	f.entry(t, class.ID, teacher.ID, math.ID, models.Monday, models.Periods[0])
	require.NoError(t, f.store.Teachers.Delete(f.ctx, teacher.ID))
	f.entry(t, class.ID, "ghost", math.ID, models.Monday, models.Periods[0])

	_, err := newTimetableService(f, nil).Generate(f.ctx, GenerateTimetableRequest{})
	appErr := requireAppError(t, err, appErrors.ErrPreconditionFailed)
	assert.Contains(t, appErr.Message, "teachers")

	entries, err := f.store.Timetable.List(f.ctx, "")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTimetableServiceGenerateRejectsOutOfRangeOverride(t *testing.T) {
	f := newFixture()
	math := f.subject(t, "Math")
	teacher := f.teacher(t, "Ana", math.ID)
	class := f.class(t, "10A")
	f.entry(t, class.ID, teacher.ID, math.ID, models.Monday, models.Periods[0])
	metrics := NewMetricsService()
	svc := newTimetableService(f, metrics)

	for _, n := range []int{41, -1, int(^uint(0) >> 1)} {
		_, err := svc.Generate(f.ctx, GenerateTimetableRequest{
			Requirements: map[string]map[string]int{class.ID: {math.ID: n}},
		})
		requireAppError(t, err, appErrors.ErrValidation)
	}

	entries, err := f.store.Timetable.List(f.ctx, "")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Zero(t, testutil.ToFloat64(metrics.generationRuns))
}

func TestTimetableServiceGenerateUnavailableTeacher(t *testing.T) {
	f := newFixture()
	math := f.subject(t, "Math")
	teacher := f.teacher(t, "Ana", math.ID)
	class := f.class(t, "10A")
	f.requirement(t, class.ID, math.ID, 5)
	for _, slot := range scheduler.Slots() {
		f.unavailable(t, teacher.ID, slot.Day, slot.Period)
	}

	resp, err := newTimetableService(f, nil).Generate(f.ctx, GenerateTimetableRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp.EntriesCreated)
	assert.Equal(t, 5, resp.Unfilled)
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedServiceSeedsOnce(t *testing.T) {
	f := newFixture()
	svc := NewSeedService(f.store.Teachers, f.store.Classes, f.store.Subjects, f.store.Requirements, f.store.Availability, nil)

	seeded, err := svc.Seed(f.ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	teachers, err := f.store.Teachers.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, teachers, 4)
	requirements, err := f.store.Requirements.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, requirements, 12)

	seeded, err = svc.Seed(f.ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
	teachers, err = f.store.Teachers.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, teachers, 4)
}

func TestSeedDataGeneratesCleanTimetable(t *testing.T) {
	f := newFixture()
	_, err := NewSeedService(f.store.Teachers, f.store.Classes, f.store.Subjects, f.store.Requirements, f.store.Availability, nil).Seed(f.ctx)
	require.NoError(t, err)

	resp, err := newTimetableService(f, nil).Generate(f.ctx, GenerateTimetableRequest{})
	require.NoError(t, err)
	assert.Positive(t, resp.EntriesCreated)

	conflicts, _, err := NewConflictService(f.sources(), f.store.Timetable, nil, nil, nil).List(f.ctx, false)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

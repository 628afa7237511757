package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

func TestAvailabilityIndexDefaultsToAvailable(t *testing.T) {
	idx := NewAvailabilityIndex([]models.Availability{
		{TeacherID: "t1", Day: models.Monday, Period: "8:00-9:00", Available: false},
		{TeacherID: "t1", Day: models.Monday, Period: "9:00-10:00", Available: true},
	})

	assert.True(t, idx.Unavailable("t1", Slot{Day: models.Monday, Period: "8:00-9:00"}))
	assert.False(t, idx.Unavailable("t1", Slot{Day: models.Monday, Period: "9:00-10:00"}))
	assert.False(t, idx.Unavailable("t1", Slot{Day: models.Tuesday, Period: "8:00-9:00"}))
	assert.False(t, idx.Unavailable("t2", Slot{Day: models.Monday, Period: "8:00-9:00"}))
}

func TestRequirementsOverrideReplacesPerClass(t *testing.T) {
	persisted := NewRequirements([]models.ClassSubjectRequirement{
		{ClassID: "c1", SubjectID: "math", PeriodsPerWeek: 4},
		{ClassID: "c1", SubjectID: "art", PeriodsPerWeek: 2},
		{ClassID: "c2", SubjectID: "math", PeriodsPerWeek: 5},
	})

	merged := persisted.Override(map[string]map[string]int{"c1": {"math": 1}})

	assert.Equal(t, 1, merged.PeriodsFor("c1", "math"))
	assert.Equal(t, 0, merged.PeriodsFor("c1", "art"))
	assert.Equal(t, 5, merged.PeriodsFor("c2", "math"))
	assert.Equal(t, 2, persisted.PeriodsFor("c1", "art"))
	assert.Equal(t, 0, merged.PeriodsFor("c3", "math"))
}

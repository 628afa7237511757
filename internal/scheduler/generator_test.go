package scheduler

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

func allSlotsUnavailable(teacherID string) []models.Availability {
	records := make([]models.Availability, 0, 40)
	for _, slot := range Slots() {
		records = append(records, models.Availability{TeacherID: teacherID, Day: slot.Day, Period: slot.Period, Available: false})
	}
	return records
}

func baseInput() Input {
	return Input{
		Teachers: []models.Teacher{{ID: "t1", Name: "Ana", Subjects: []string{"math"}}},
		Classes:  []models.Class{{ID: "c1", Name: "10A"}},
		Subjects: []models.Subject{{ID: "math", Name: "Math"}},
		Requirements: Requirements{
			"c1": {"math": 3},
		},
		Availability: NewAvailabilityIndex(nil),
	}
}

func TestSlotsAreDayMajor(t *testing.T) {
	slots := Slots()
	require.Len(t, slots, 40)
	assert.Equal(t, Slot{Day: models.Monday, Period: "8:00-9:00"}, slots[0])
	assert.Equal(t, Slot{Day: models.Monday, Period: "15:00-16:00"}, slots[7])
	assert.Equal(t, Slot{Day: models.Friday, Period: "15:00-16:00"}, slots[39])
}

func TestShuffleIsAPermutation(t *testing.T) {
	slots := Slots()
	Shuffle(slots, NewSeededSource(7))

	seen := make(map[Slot]int)
	for _, s := range slots {
		seen[s]++
	}
	assert.Len(t, seen, 40)
	for _, s := range Slots() {
		assert.Equal(t, 1, seen[s])
	}
}

func TestShuffleIsReproducibleWithSeed(t *testing.T) {
	a, b := Slots(), Slots()
	Shuffle(a, NewSeededSource(42))
	Shuffle(b, NewSeededSource(42))
	assert.Equal(t, a, b)
}

func TestGeneratePreconditions(t *testing.T) {
	gen := NewGenerator(NewSeededSource(1))

	cases := map[string]func(*Input){
		"no teachers": func(in *Input) { in.Teachers = nil },
		"no classes":  func(in *Input) { in.Classes = nil },
		"no subjects": func(in *Input) { in.Subjects = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := baseInput()
			mutate(&in)
			plan, err := gen.Generate(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrPrecondition))
			assert.Nil(t, plan)
		})
	}
}

func TestGenerateSingleTeacherFullyAvailable(t *testing.T) {
	plan, err := NewGenerator(NewSeededSource(3)).Generate(baseInput())
	require.NoError(t, err)

	require.Len(t, plan.Entries, 3)
	slots := make(map[Slot]struct{})
	for _, e := range plan.Entries {
		assert.Equal(t, "c1", e.ClassID)
		assert.Equal(t, "t1", e.TeacherID)
		assert.Equal(t, "math", e.SubjectID)
		slots[Slot{Day: e.Day, Period: e.Period}] = struct{}{}
	}
	assert.Len(t, slots, 3)
	assert.Equal(t, 3, plan.Requested)
	assert.Equal(t, 0, plan.Unfilled)
}

func TestGenerateTeacherUnavailableEverywhere(t *testing.T) {
	in := baseInput()
	in.Requirements = Requirements{"c1": {"math": 2}}
	in.Availability = NewAvailabilityIndex(allSlotsUnavailable("t1"))

	plan, err := NewGenerator(NewSeededSource(3)).Generate(in)
	require.NoError(t, err)
	assert.Empty(t, plan.Entries)
	assert.Equal(t, 2, plan.Unfilled)
}

func TestGenerateZeroOrAbsentRequirement(t *testing.T) {
	in := baseInput()
	in.Subjects = append(in.Subjects, models.Subject{ID: "art"}, models.Subject{ID: "music"})
	in.Teachers[0].Subjects = []string{"math", "art", "music"}
	in.Requirements = Requirements{"c1": {"math": 0, "art": -2}}

	plan, err := NewGenerator(NewSeededSource(3)).Generate(in)
	require.NoError(t, err)
	assert.Empty(t, plan.Entries)
	assert.Equal(t, 0, plan.Requested)
}

func TestGenerateSharedTeacherNeverExceedsGrid(t *testing.T) {
	in := baseInput()
	in.Classes = []models.Class{{ID: "c1"}, {ID: "c2"}}
	in.Requirements = Requirements{
		"c1": {"math": 30},
		"c2": {"math": 30},
	}

	plan, err := NewGenerator(NewSeededSource(11)).Generate(in)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(plan.Entries), 40)
	assertNoCollisions(t, plan.Entries)
}

func TestGenerateRequirementAboveGridIsCapped(t *testing.T) {
	in := baseInput()
	in.Teachers = append(in.Teachers, models.Teacher{ID: "t2", Subjects: []string{"math"}})
	in.Requirements = Requirements{"c1": {"math": 55}}

	plan, err := NewGenerator(NewSeededSource(5)).Generate(in)
	require.NoError(t, err)
	assert.Len(t, plan.Entries, 40)
	assert.Equal(t, 40, plan.Requested)
	assert.Zero(t, plan.Unfilled)
}

func TestGenerateHugeRequirementsStayBounded(t *testing.T) {
	in := baseInput()
	in.Subjects = []models.Subject{{ID: "math"}, {ID: "art"}}
	in.Requirements = Requirements{"c1": {"math": math.MaxInt, "art": math.MaxInt}}

	plan, err := NewGenerator(NewSeededSource(3)).Generate(in)
	require.NoError(t, err)
	assert.Len(t, plan.Entries, 40)
	assert.Equal(t, 80, plan.Requested)
	assert.Equal(t, 40, plan.Unfilled)
}

func TestGenerateFirstEligibleTeacherWins(t *testing.T) {
	in := baseInput()
	in.Teachers = []models.Teacher{
		{ID: "t0", Subjects: []string{"art"}},
		{ID: "t1", Subjects: []string{"math"}},
		{ID: "t2", Subjects: []string{"math"}},
	}
	plan, err := NewGenerator(NewSeededSource(9)).Generate(in)
	require.NoError(t, err)
	for _, e := range plan.Entries {
		assert.Equal(t, "t1", e.TeacherID)
	}
}

func TestGenerateConsumesSlotsWithoutTeacher(t *testing.T) {
	// Science has no teacher, yet its 38 requested periods still consume slots,
	// leaving only two slots for math.
	in := baseInput()
	in.Subjects = []models.Subject{{ID: "science"}, {ID: "math"}}
	in.Requirements = Requirements{"c1": {"science": 38, "math": 5}}

	plan, err := NewGenerator(NewSeededSource(2)).Generate(in)
	require.NoError(t, err)
	assert.Len(t, plan.Entries, 2)
}

func TestGenerateRespectsExistingBookings(t *testing.T) {
	in := baseInput()
	in.Requirements = Requirements{"c1": {"math": 40}}
	in.Existing = []models.TimetableEntry{
		{ClassID: "c9", TeacherID: "t1", SubjectID: "math", Day: models.Monday, Period: "8:00-9:00"},
	}

	plan, err := NewGenerator(NewSeededSource(2)).Generate(in)
	require.NoError(t, err)
	assert.Len(t, plan.Entries, 39)
	for _, e := range plan.Entries {
		assert.False(t, e.Day == models.Monday && e.Period == "8:00-9:00")
	}
}

func TestGenerateInvariantsAcrossSeeds(t *testing.T) {
	in := Input{
		Teachers: []models.Teacher{
			{ID: "t1", Subjects: []string{"math", "physics"}},
			{ID: "t2", Subjects: []string{"math"}},
			{ID: "t3", Subjects: []string{"history", "art"}},
		},
		Classes:  []models.Class{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}},
		Subjects: []models.Subject{{ID: "math"}, {ID: "physics"}, {ID: "history"}, {ID: "art"}},
		Requirements: Requirements{
			"c1": {"math": 6, "physics": 4, "history": 3, "art": 2},
			"c2": {"math": 6, "physics": 4, "history": 3},
			"c3": {"math": 8, "art": 5},
		},
		Availability: NewAvailabilityIndex([]models.Availability{
			{TeacherID: "t1", Day: models.Monday, Period: "8:00-9:00", Available: false},
			{TeacherID: "t1", Day: models.Friday, Period: "15:00-16:00", Available: false},
			{TeacherID: "t2", Day: models.Monday, Period: "8:00-9:00", Available: true},
			{TeacherID: "t3", Day: models.Wednesday, Period: "12:00-13:00", Available: false},
		}),
	}
	teachers := map[string]models.Teacher{}
	for _, teacher := range in.Teachers {
		teachers[teacher.ID] = teacher
	}

	for seed := int64(0); seed < 25; seed++ {
		plan, err := NewGenerator(NewSeededSource(seed)).Generate(in)
		require.NoError(t, err)
		assertNoCollisions(t, plan.Entries)
		for _, e := range plan.Entries {
			assert.True(t, teachers[e.TeacherID].CanTeach(e.SubjectID))
			assert.False(t, in.Availability.Unavailable(e.TeacherID, Slot{Day: e.Day, Period: e.Period}))
		}
		assert.Empty(t, DetectConflicts(plan.Entries, in.Teachers, in.Availability))
	}
}

func assertNoCollisions(t *testing.T, entries []models.TimetableEntry) {
	t.Helper()
	classes := make(BookingIndex)
	teachers := make(BookingIndex)
	for _, e := range entries {
		slot := Slot{Day: e.Day, Period: e.Period}
		require.False(t, classes.Booked(e.ClassID, slot), "class %s booked twice at %v", e.ClassID, slot)
		require.False(t, teachers.Booked(e.TeacherID, slot), "teacher %s booked twice at %v", e.TeacherID, slot)
		classes.Book(e.ClassID, slot)
		teachers.Book(e.TeacherID, slot)
	}
}

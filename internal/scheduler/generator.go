package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

// ErrPrecondition is returned when there is nothing to schedule with.
var ErrPrecondition = errors.New("teachers, classes and subjects are required")

// Input is a consistent snapshot of everything the generator reads.
type Input struct {
	Teachers     []models.Teacher
	Classes      []models.Class
	Subjects     []models.Subject
	Requirements Requirements
	Availability AvailabilityIndex
	// Existing entries are treated as already booked for both their teacher and their class.
	Existing []models.TimetableEntry
}

// Plan is the ordered list of entries the generator decided to create.
type Plan struct {
	Entries []models.TimetableEntry
	// Requested is the sum of positive requirements over all classes, each
	// capped at the size of the weekly grid.
	Requested int
	// Unfilled counts requested periods that received no entry.
	Unfilled int
}

// Generator assigns teachers to class slots with a greedy randomized pass.
type Generator struct {
	random RandomSource
}

// NewGenerator builds a Generator. A nil source falls back to DefaultRandomSource.
func NewGenerator(src RandomSource) *Generator {
	if src == nil {
		src = DefaultRandomSource()
	}
	return &Generator{random: src}
}

// Precheck validates the generator preconditions without running it.
func Precheck(in Input) error {
	var missing []string
	if len(in.Teachers) == 0 {
		missing = append(missing, "teachers")
	}
	if len(in.Classes) == 0 {
		missing = append(missing, "classes")
	}
	if len(in.Subjects) == 0 {
		missing = append(missing, "subjects")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: no %s", ErrPrecondition, strings.Join(missing, ", "))
	}
	return nil
}

// Generate walks classes and subjects in input order. Each class draws slots
// from its own shuffled grid; every requested period consumes one slot whether
// or not an eligible teacher is found for it.
func (g *Generator) Generate(in Input) (*Plan, error) {
	if err := Precheck(in); err != nil {
		return nil, err
	}

	teacherBookings := make(BookingIndex)
	classBookings := make(BookingIndex)
	for _, entry := range in.Existing {
		slot := Slot{Day: entry.Day, Period: entry.Period}
		teacherBookings.Book(entry.TeacherID, slot)
		classBookings.Book(entry.ClassID, slot)
	}

	plan := &Plan{Entries: []models.TimetableEntry{}}
	for _, class := range in.Classes {
		slots := Slots()
		Shuffle(slots, g.random)
		cursor := 0

		for _, subject := range in.Subjects {
			n := in.Requirements.PeriodsFor(class.ID, subject.ID)
			if n <= 0 {
				continue
			}
			plan.Requested += min(n, len(slots))

			for k := 0; k < n && cursor < len(slots); k++ {
				slot := slots[cursor]
				cursor++
				if classBookings.Booked(class.ID, slot) {
					continue
				}

				teacher, ok := g.pickTeacher(in, teacherBookings, subject.ID, slot)
				if !ok {
					continue
				}
				teacherBookings.Book(teacher.ID, slot)
				classBookings.Book(class.ID, slot)
				plan.Entries = append(plan.Entries, models.TimetableEntry{
					ClassID:   class.ID,
					TeacherID: teacher.ID,
					SubjectID: subject.ID,
					Day:       slot.Day,
					Period:    slot.Period,
				})
			}
		}
	}

	plan.Unfilled = plan.Requested - len(plan.Entries)
	return plan, nil
}

// pickTeacher returns the first teacher in input order that is qualified, not
// marked unavailable and not yet booked at slot.
func (g *Generator) pickTeacher(in Input, bookings BookingIndex, subjectID string, slot Slot) (models.Teacher, bool) {
	for _, teacher := range in.Teachers {
		if !teacher.CanTeach(subjectID) {
			continue
		}
		if in.Availability.Unavailable(teacher.ID, slot) {
			continue
		}
		if bookings.Booked(teacher.ID, slot) {
			continue
		}
		return teacher, true
	}
	return models.Teacher{}, false
}

package scheduler

import (
	"github.com/noah-isme/sma-timetable-api/internal/models"
)

// AvailabilityIndex answers "is this teacher explicitly unavailable at this slot".
type AvailabilityIndex map[string]map[Slot]bool

// NewAvailabilityIndex indexes availability records. Later records win.
func NewAvailabilityIndex(records []models.Availability) AvailabilityIndex {
	idx := make(AvailabilityIndex)
	for _, rec := range records {
		slots, ok := idx[rec.TeacherID]
		if !ok {
			slots = make(map[Slot]bool)
			idx[rec.TeacherID] = slots
		}
		slots[Slot{Day: rec.Day, Period: rec.Period}] = rec.Available
	}
	return idx
}

// Unavailable is true only for an explicit record with available=false.
func (a AvailabilityIndex) Unavailable(teacherID string, slot Slot) bool {
	available, ok := a[teacherID][slot]
	return ok && !available
}

type booking struct {
	owner string
	slot  Slot
}

// BookingIndex tracks which owners (teachers or classes) already hold a slot.
type BookingIndex map[booking]struct{}

// Booked reports whether owner holds slot.
func (b BookingIndex) Booked(owner string, slot Slot) bool {
	_, ok := b[booking{owner: owner, slot: slot}]
	return ok
}

// Book records owner at slot.
func (b BookingIndex) Book(owner string, slot Slot) {
	b[booking{owner: owner, slot: slot}] = struct{}{}
}

// Requirements maps class id to subject id to periods per week.
type Requirements map[string]map[string]int

// NewRequirements builds the lookup from persisted requirement rows.
func NewRequirements(rows []models.ClassSubjectRequirement) Requirements {
	reqs := make(Requirements)
	for _, row := range rows {
		if reqs[row.ClassID] == nil {
			reqs[row.ClassID] = make(map[string]int)
		}
		reqs[row.ClassID][row.SubjectID] = row.PeriodsPerWeek
	}
	return reqs
}

// PeriodsFor returns the requested periods; absent pairs yield 0.
func (r Requirements) PeriodsFor(classID, subjectID string) int {
	return r[classID][subjectID]
}

// Override returns a copy in which every class present in override has its
// requirements replaced wholesale. Classes absent from override are kept.
func (r Requirements) Override(override map[string]map[string]int) Requirements {
	merged := make(Requirements, len(r)+len(override))
	for classID, subjects := range r {
		merged[classID] = subjects
	}
	for classID, subjects := range override {
		replaced := make(map[string]int, len(subjects))
		for subjectID, n := range subjects {
			replaced[subjectID] = n
		}
		merged[classID] = replaced
	}
	return merged
}

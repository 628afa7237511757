package scheduler

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

const unknownTeacher = "Teacher"

// DetectConflicts audits an assignment set. All double-booking findings come
// first, then all unavailability findings, each in entry order. It never
// mutates its inputs and returns the same findings for the same snapshot.
func DetectConflicts(entries []models.TimetableEntry, teachers []models.Teacher, availability AvailabilityIndex) []models.Conflict {
	names := teacherNames(teachers)
	conflicts := make([]models.Conflict, 0)

	seen := make(BookingIndex)
	for _, entry := range entries {
		slot := Slot{Day: entry.Day, Period: entry.Period}
		if !seen.Booked(entry.TeacherID, slot) {
			seen.Book(entry.TeacherID, slot)
			continue
		}
		conflicts = append(conflicts, models.Conflict{
			Type:      models.ConflictTeacherDoubleBooking,
			Message:   fmt.Sprintf("%s is double-booked", names.label(entry.TeacherID)),
			Day:       entry.Day,
			Period:    entry.Period,
			TeacherID: entry.TeacherID,
		})
	}

	for _, entry := range entries {
		if !availability.Unavailable(entry.TeacherID, Slot{Day: entry.Day, Period: entry.Period}) {
			continue
		}
		conflicts = append(conflicts, models.Conflict{
			Type:      models.ConflictTeacherUnavailable,
			Message:   fmt.Sprintf("%s is not available", names.label(entry.TeacherID)),
			Day:       entry.Day,
			Period:    entry.Period,
			TeacherID: entry.TeacherID,
			ClassID:   entry.ClassID,
		})
	}

	return conflicts
}

// AuditCoverage reports entries whose teacher is no longer qualified for the
// subject, then requirements that are scheduled fewer times than requested.
func AuditCoverage(entries []models.TimetableEntry, teachers []models.Teacher, requirements []models.ClassSubjectRequirement) []models.Conflict {
	byID := lo.KeyBy(teachers, func(t models.Teacher) string { return t.ID })
	conflicts := make([]models.Conflict, 0)

	for _, entry := range entries {
		teacher, ok := byID[entry.TeacherID]
		if !ok || teacher.CanTeach(entry.SubjectID) {
			continue
		}
		conflicts = append(conflicts, models.Conflict{
			Type:      models.ConflictMissingSubject,
			Message:   fmt.Sprintf("%s is not qualified for subject %s", teacher.Name, entry.SubjectID),
			Day:       entry.Day,
			Period:    entry.Period,
			TeacherID: entry.TeacherID,
			ClassID:   entry.ClassID,
			SubjectID: entry.SubjectID,
		})
	}

	scheduled := lo.CountValuesBy(entries, func(e models.TimetableEntry) coverageKey {
		return coverageKey{classID: e.ClassID, subjectID: e.SubjectID}
	})
	for _, req := range requirements {
		got := scheduled[coverageKey{classID: req.ClassID, subjectID: req.SubjectID}]
		if got >= req.PeriodsPerWeek {
			continue
		}
		conflicts = append(conflicts, models.Conflict{
			Type:      models.ConflictUnassignedPeriod,
			Message:   fmt.Sprintf("%d of %d periods unassigned", req.PeriodsPerWeek-got, req.PeriodsPerWeek),
			ClassID:   req.ClassID,
			SubjectID: req.SubjectID,
		})
	}

	return conflicts
}

type coverageKey struct {
	classID   string
	subjectID string
}

type nameLookup map[string]string

func teacherNames(teachers []models.Teacher) nameLookup {
	return lo.SliceToMap(teachers, func(t models.Teacher) (string, string) {
		return t.ID, t.Name
	})
}

func (n nameLookup) label(teacherID string) string {
	if name, ok := n[teacherID]; ok && name != "" {
		return name
	}
	return unknownTeacher
}

package models

import "time"

// TimetableEntry assigns a teacher and subject to a class for one slot.
type TimetableEntry struct {
	ID        string    `db:"id" json:"id"`
	ClassID   string    `db:"class_id" json:"class_id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	Day       Day       `db:"day" json:"day"`
	Period    Period    `db:"period" json:"period"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ConflictType classifies audit findings.
type ConflictType string

const (
	ConflictTeacherDoubleBooking ConflictType = "teacher_double_booking"
	ConflictTeacherUnavailable   ConflictType = "teacher_unavailable"
	ConflictUnassignedPeriod     ConflictType = "unassigned_period"
	ConflictMissingSubject       ConflictType = "missing_subject"
)

// Conflict is a derived audit finding. It is never persisted.
type Conflict struct {
	Type      ConflictType `json:"type"`
	Message   string       `json:"message"`
	Day       Day          `json:"day,omitempty"`
	Period    Period       `json:"period,omitempty"`
	TeacherID string       `json:"teacher_id,omitempty"`
	ClassID   string       `json:"class_id,omitempty"`
	SubjectID string       `json:"subject_id,omitempty"`
}

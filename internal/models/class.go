package models

import "time"

// Class represents a group of students sharing one timetable.
type Class struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Grade        string    `db:"grade" json:"grade"`
	StudentCount int       `db:"student_count" json:"student_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ClassSubjectRequirement states how many periods per week a class needs of a subject.
type ClassSubjectRequirement struct {
	ID             string    `db:"id" json:"id"`
	ClassID        string    `db:"class_id" json:"class_id"`
	SubjectID      string    `db:"subject_id" json:"subject_id"`
	PeriodsPerWeek int       `db:"periods_per_week" json:"periods_per_week"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

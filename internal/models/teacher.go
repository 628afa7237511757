package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/samber/lo"
)

// Teacher represents a staff member and the subjects they are qualified to teach.
type Teacher struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Email     string         `db:"email" json:"email"`
	Subjects  pq.StringArray `db:"subjects" json:"subjects"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// CanTeach reports whether the teacher is qualified for subjectID.
func (t Teacher) CanTeach(subjectID string) bool {
	return lo.Contains(t.Subjects, subjectID)
}

// Availability marks a teacher as available or unavailable for one slot.
// A missing record means the teacher is available.
type Availability struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	Day       Day       `db:"day" json:"day"`
	Period    Period    `db:"period" json:"period"`
	Available bool      `db:"available" json:"available"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

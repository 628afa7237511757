package service

import (
	"context"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

type teacherLister interface {
	List(ctx context.Context) ([]models.Teacher, error)
}

type classLister interface {
	List(ctx context.Context) ([]models.Class, error)
}

type subjectLister interface {
	List(ctx context.Context) ([]models.Subject, error)
}

type requirementLister interface {
	List(ctx context.Context) ([]models.ClassSubjectRequirement, error)
}

type availabilityLister interface {
	List(ctx context.Context) ([]models.Availability, error)
}

// Sources are the read paths the generator and the auditor snapshot from.
type Sources struct {
	Teachers     teacherLister
	Classes      classLister
	Subjects     subjectLister
	Requirements requirementLister
	Availability availabilityLister
}

type snapshot struct {
	teachers     []models.Teacher
	classes      []models.Class
	subjects     []models.Subject
	requirements []models.ClassSubjectRequirement
	availability []models.Availability
}

func (src Sources) load(ctx context.Context) (*snapshot, error) {
	var (
		snap snapshot
		err  error
	)
	if snap.teachers, err = src.Teachers.List(ctx); err != nil {
		return nil, internalError(err, "failed to load teachers")
	}
	if snap.classes, err = src.Classes.List(ctx); err != nil {
		return nil, internalError(err, "failed to load classes")
	}
	if snap.subjects, err = src.Subjects.List(ctx); err != nil {
		return nil, internalError(err, "failed to load subjects")
	}
	if snap.requirements, err = src.Requirements.List(ctx); err != nil {
		return nil, internalError(err, "failed to load requirements")
	}
	if snap.availability, err = src.Availability.List(ctx); err != nil {
		return nil, internalError(err, "failed to load availability")
	}
	return &snap, nil
}

package service

import (
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

// NewValidator returns a validator with the timetable_day and timetable_period tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("timetable_day", func(fl validator.FieldLevel) bool {
		return models.Day(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("timetable_period", func(fl validator.FieldLevel) bool {
		return models.Period(fl.Field().String()).Valid()
	})
	return v
}

// loadError maps a repository lookup failure to a typed API error.
func loadError(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, resource+" not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+resource)
}

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

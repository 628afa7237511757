package handler

import (
	"net/http"

	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

func bindError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
}

package calendarerrors

import (
	"net/http"

	"github.com/CodiWebSite/poni-connect-sub002/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeValidation,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidation,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidNonWorkingDayID = apperror.New(
		apperror.CodeValidation,
		"invalid non-working day id",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeValidation,
		"invalid year",
		http.StatusBadRequest,
	)
)

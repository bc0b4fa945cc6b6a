package balanceerrors

import (
	"net/http"

	"github.com/CodiWebSite/poni-connect-sub002/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeValidation,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeValidation,
		"invalid year",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrNotOwnBalance = apperror.New(
		apperror.CodeInsufficientPermission,
		"you can only read your own balance",
		http.StatusForbidden,
	)
)

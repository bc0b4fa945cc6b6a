package departmenterrors

import (
	"net/http"

	"github.com/CodiWebSite/poni-connect-sub002/internal/shared/apperror"
)

var (
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeValidation,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeValidation,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrHeadAlreadyAssigned = apperror.New(
		apperror.CodeConflict,
		"employee is already assigned as head of this department",
		http.StatusConflict,
	)
)

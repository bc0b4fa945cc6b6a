package leaverequesterrors

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
	ErrInvalidRequestID = apperror.New(
		apperror.CodeValidation,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidation,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeValidation,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrNoEmployeeRecord = apperror.New(
		apperror.CodeValidation,
		"caller has no linked employee record",
		http.StatusBadRequest,
	)
	ErrNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidTransition,
		"leave request status does not allow this transition",
		http.StatusConflict,
	)
	ErrAlreadySigned = apperror.New(
		apperror.CodeInvalidTransition,
		"this request has already been signed",
		http.StatusConflict,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeValidation,
		"rejection_reason is required when rejecting",
		http.StatusBadRequest,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeInsufficientPermission,
		"only the owner of the request may do this",
		http.StatusForbidden,
	)
	ErrNotDepartmentHead = apperror.New(
		apperror.CodeInsufficientPermission,
		"only a head of the employee's department or a super admin may decide this request",
		http.StatusForbidden,
	)
	ErrDeleteFinalState = apperror.New(
		apperror.CodeInvalidTransition,
		"a decided leave request can no longer be deleted",
		http.StatusConflict,
	)
	ErrConcurrentModification = apperror.New(
		apperror.CodeConcurrentModification,
		"the request was modified concurrently, please retry",
		http.StatusConflict,
	)
)

package autherrors

import (
	"net/http"

	"github.com/CodiWebSite/poni-connect-sub002/internal/shared/apperror"
)

var (
	ErrInvalidCredentials     = apperror.New(apperror.CodeUnauthorized, "Invalid email or password", http.StatusUnauthorized)
	ErrInvalidToken           = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired           = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
	ErrInvalidRefreshToken    = apperror.New("INVALID_REFRESH_TOKEN", "Invalid refresh token", http.StatusUnauthorized)
	ErrForbidden              = apperror.New(apperror.CodeInsufficientPermission, "You do not have access to this resource", http.StatusForbidden)
	ErrInvalidUserID          = apperror.New(apperror.CodeValidation, "Invalid user id", http.StatusBadRequest)
	ErrUserNotFound           = apperror.New(apperror.CodeNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyRegistered = apperror.New(apperror.CodeConflict, "Email is already registered", http.StatusConflict)
	ErrAccountDisabled        = apperror.New(apperror.CodeUnauthorized, "Account is disabled", http.StatusUnauthorized)
	ErrTokenGenerationFailed  = apperror.New(apperror.CodeInternalError, "Could not generate token", http.StatusInternalServerError)
)

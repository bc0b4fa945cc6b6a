package notificationerrors

import (
	"net/http"

	"github.com/CodiWebSite/poni-connect-sub002/internal/shared/apperror"
)

var (
	ErrNotFound     = apperror.New(apperror.CodeNotFound, "Notification not found", http.StatusNotFound)
	ErrNotRecipient = apperror.New(apperror.CodeInsufficientPermission, "Notification belongs to another user", http.StatusForbidden)
	ErrInvalidID    = apperror.New(apperror.CodeValidation, "Invalid notification id", http.StatusBadRequest)
)

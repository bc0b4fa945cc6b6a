package balance

import (
	"net/http"
	"strconv"
	"time"

	balanceerrors "github.com/CodiWebSite/poni-connect-sub002/internal/balance/errors"
	"github.com/CodiWebSite/poni-connect-sub002/internal/domain"
	"github.com/CodiWebSite/poni-connect-sub002/internal/shared/apperror"
	"github.com/CodiWebSite/poni-connect-sub002/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetForEmployee(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		h.writeServiceError(c, balanceerrors.ErrInvalidYear)
		return
	}

	// plain employees only see their own balance
	if c.GetString("role") == domain.RoleEmployee && c.Param("id") != c.GetString("employee_id") {
		h.writeServiceError(c, balanceerrors.ErrNotOwnBalance)
		return
	}

	resp, err := h.service.ForEmployee(c.Request.Context(), c.Param("id"), year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

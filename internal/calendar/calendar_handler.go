package calendar

import (
	"net/http"
	"strconv"
	"time"

	calendarerrors "github.com/CodiWebSite/poni-connect-sub002/internal/calendar/errors"
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
	l := zap.L().Named("calendar.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("calendar request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// WorkingDays answers the calendar widget's range queries.
func (h *Handler) WorkingDays(c *gin.Context) {
	start, err := time.Parse(dateLayout, c.Query("start_date"))
	if err != nil {
		h.writeServiceError(c, calendarerrors.ErrInvalidDateFormat)
		return
	}
	end, err := time.Parse(dateLayout, c.Query("end_date"))
	if err != nil {
		h.writeServiceError(c, calendarerrors.ErrInvalidDateFormat)
		return
	}

	days, err := h.service.WorkingDays(c.Request.Context(), start, end)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, WorkingDaysResponse{
		StartDate:   start.Format(dateLayout),
		EndDate:     end.Format(dateLayout),
		WorkingDays: days,
	}, nil)
}

func (h *Handler) DayInfo(c *gin.Context) {
	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		h.writeServiceError(c, calendarerrors.ErrInvalidDateFormat)
		return
	}

	dayOff, err := h.service.DayOff(c.Request.Context(), date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	info := DayInfoResponse{
		Date:   date.Format(dateLayout),
		DayOff: dayOff,
	}
	if name, ok := HolidayName(date); ok {
		info.HolidayName = name
	}

	response.Success(c, http.StatusOK, info, nil)
}

func (h *Handler) DeclareNonWorkingDay(c *gin.Context) {
	actorID := c.GetString("user_id")

	var req DeclareNonWorkingDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.DeclareNonWorkingDay(c.Request.Context(), actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListNonWorkingDays(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil || year < 2000 || year > 2100 {
		h.writeServiceError(c, calendarerrors.ErrInvalidYear)
		return
	}

	resp, err := h.service.ListNonWorkingDays(c.Request.Context(), year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RemoveNonWorkingDay(c *gin.Context) {
	if err := h.service.RemoveNonWorkingDay(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

package calendar

import (
	"github.com/CodiWebSite/poni-connect-sub002/internal/middleware"
	"github.com/CodiWebSite/poni-connect-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	cal := r.Group("/calendar")
	cal.Use(middleware.AuthMiddleware())
	{
		cal.GET("/working-days", handler.WorkingDays)
		cal.GET("/day-info", handler.DayInfo)
		cal.GET("/non-working-days", handler.ListNonWorkingDays)
		cal.POST("/non-working-days", middleware.RBACAuthorize(rbacService, "calendar", "manage"), handler.DeclareNonWorkingDay)
		cal.DELETE("/non-working-days/:id", middleware.RBACAuthorize(rbacService, "calendar", "manage"), handler.RemoveNonWorkingDay)
	}
}

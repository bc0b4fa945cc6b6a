package notification

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
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	notifications.Use(middleware.RBACAuthorize(rbacService, "notification", "read"))
	{
		notifications.GET("", handler.ListMine)
		notifications.POST("/:id/read", handler.MarkRead)
	}
}

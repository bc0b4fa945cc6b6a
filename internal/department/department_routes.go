package department

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
	depts := r.Group("/departments")
	depts.Use(middleware.AuthMiddleware())
	{
		depts.GET("", handler.GetAll)
		depts.GET("/:id", handler.GetById)
		depts.POST("", middleware.RBACAuthorize(rbacService, "department", "manage"), handler.Create)
		depts.DELETE("/:id", middleware.RBACAuthorize(rbacService, "department", "manage"), handler.Delete)
		depts.POST("/:id/heads", middleware.RBACAuthorize(rbacService, "department", "manage"), handler.AssignHead)
		depts.DELETE("/:id/heads/:employee_id", middleware.RBACAuthorize(rbacService, "department", "manage"), handler.UnassignHead)
	}
}

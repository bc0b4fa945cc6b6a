package balance

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
	balances := r.Group("/employees/:id/balance")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetForEmployee)
	}
}

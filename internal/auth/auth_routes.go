package auth

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
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
		authGroup.POST("/logout", handler.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.Me)
		authGroup.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RBACAuthorize(rbacService, "user", "manage"),
			handler.Register,
		)
	}
}

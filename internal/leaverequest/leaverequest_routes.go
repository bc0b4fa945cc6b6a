package leaverequest

import (
	"github.com/CodiWebSite/poni-connect-sub002/internal/middleware"
	"github.com/CodiWebSite/poni-connect-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.GetAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.GetByID)
		requests.POST("",
			middleware.RBACAuthorize(rbacService, "leave_request", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		requests.POST("/:id/sign",
			middleware.RBACAuthorize(rbacService, "leave_request", "sign"),
			middleware.Idempotency(rdb),
			handler.Sign,
		)
		requests.POST("/:id/approve",
			middleware.RBACAuthorize(rbacService, "leave_request", "approve"),
			middleware.Idempotency(rdb),
			handler.Approve,
		)
		requests.POST("/:id/reject",
			middleware.RBACAuthorize(rbacService, "leave_request", "approve"),
			middleware.Idempotency(rdb),
			handler.Reject,
		)
		requests.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave_request", "create"), handler.Delete)
	}
}

package leaverequest

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-leaveflow/internal/middleware"
	"go-leaveflow/internal/rbac"
)

// RegisterRoutes mounts the two review surfaces. /leaves carries the
// general chains; /medical-leaves is the extended medical chain with its
// own RBAC resource, backed by the same handler and decision path.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	registerSurface(r, "/leaves", "leave", handler, rbacService, rdb, logger)
	registerSurface(r, "/medical-leaves", "medical_leave", handler, rbacService, rdb, logger)
}

func registerSurface(
	r *gin.RouterGroup,
	path, resource string,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	group := r.Group(path)
	group.Use(middleware.AuthMiddleware())
	group.Use(middleware.ContextLogger(logger))
	{
		group.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, resource, "read"),
			handler.GetAll,
		)

		group.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, resource, "read"),
			handler.GetById,
		)

		group.GET("/:id/history",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, resource, "read"),
			handler.History,
		)

		group.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, resource, "create"),
			handler.Create,
		)

		group.POST("/:id/decision",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, resource, "approve"),
			middleware.Idempotency(rdb),
			handler.Decide,
		)

		group.POST("/:id/withdraw",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, resource, "create"),
			handler.Withdraw,
		)
	}
}

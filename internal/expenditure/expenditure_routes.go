package expenditure

import (
	"hrms/internal/middleware"
	"hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	expenditures := r.Group("/expenditures")
	expenditures.Use(middleware.AuthMiddleware())
	{
		expenditures.GET("", middleware.RBACAuthorize(rbacService, "expenditure", "read"), handler.List)
		expenditures.GET("/my", middleware.RBACAuthorize(rbacService, "expenditure", "read"), handler.ListMine)
		expenditures.GET("/pending", middleware.RBACAuthorize(rbacService, "expenditure", "approve"), handler.ListPending)
		expenditures.GET("/:id", middleware.RBACAuthorize(rbacService, "expenditure", "read"), handler.GetById)
		if redisClient != nil {
			expenditures.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "expenditure", "create"),
				handler.Create,
			)
		} else {
			expenditures.POST("", middleware.RBACAuthorize(rbacService, "expenditure", "create"), handler.Create)
		}
		expenditures.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "expenditure", "approve"), handler.Approve)
		expenditures.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "expenditure", "approve"), handler.Reject)
	}
}

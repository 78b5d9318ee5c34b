package expendituretype

import (
	"hrms/internal/middleware"
	"hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	types := r.Group("/expenditure-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "expendituretype", "read"), handler.GetAll)
		types.GET("/:id", middleware.RBACAuthorize(rbacService, "expendituretype", "read"), handler.GetById)
		types.POST("", middleware.RBACAuthorize(rbacService, "expendituretype", "manage"), handler.Create)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, "expendituretype", "manage"), handler.Update)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, "expendituretype", "manage"), handler.Delete)
	}
}

package company

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
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	{
		companies.GET("", middleware.RBACAuthorize(rbacService, "company", "read"), handler.GetAll)
		companies.GET("/:id", middleware.RBACAuthorize(rbacService, "company", "read"), handler.GetById)
		companies.POST("", middleware.RBACAuthorize(rbacService, "company", "manage"), handler.Create)
		companies.PUT("/:id", middleware.RBACAuthorize(rbacService, "company", "manage"), handler.Update)
		companies.DELETE("/:id", middleware.RBACAuthorize(rbacService, "company", "manage"), handler.Delete)
	}
}

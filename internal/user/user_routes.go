package user

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.ListEmployees)
		employees.GET("/:id", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetEmployee)
		employees.POST("", middleware.RBACAuthorize(rbacService, "employee", "manage"), handler.CreateEmployee)
		employees.PUT("/:id", middleware.RBACAuthorize(rbacService, "employee", "manage"), handler.UpdateEmployee)
		employees.DELETE("/:id", middleware.RBACAuthorize(rbacService, "employee", "manage"), handler.DeactivateEmployee)
	}
}

package department

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	departments.Use(middleware.ContextLogger(logger))
	{
		departments.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "department", "write"),
			handler.Create,
		)

		departments.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "department", "read"),
			handler.GetAll,
		)

		departments.GET("/tree",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "department", "read"),
			handler.GetTree,
		)

		departments.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "department", "read"),
			handler.GetById,
		)

		departments.GET("/:id/deletion-check",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "department", "read"),
			handler.CheckDeletion,
		)

		departments.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "department", "write"),
			handler.Update,
		)

		departments.DELETE("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "department", "write"),
			handler.Delete,
		)
	}
}

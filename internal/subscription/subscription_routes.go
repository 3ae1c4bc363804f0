package subscription

import (
	"zestpay/internal/middleware"
	"zestpay/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	subs := r.Group("/subscription")
	subs.Use(middleware.AuthMiddleware())
	subs.Use(middleware.ContextLogger(logger))
	{
		subs.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "subscription", "read"),
			handler.Status,
		)

		subs.POST("/activate",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "subscription", "create"),
			handler.Activate,
		)
	}
}

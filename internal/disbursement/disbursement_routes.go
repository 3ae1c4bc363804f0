package disbursement

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
	disbursements := r.Group("/disbursements")
	disbursements.Use(middleware.AuthMiddleware())
	disbursements.Use(middleware.ContextLogger(logger))
	{
		disbursements.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "withdrawal", "read"),
			handler.GetMine,
		)
	}
}

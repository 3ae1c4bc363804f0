package withdrawal

import (
	"zestpay/internal/middleware"
	"zestpay/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	withdrawals := r.Group("/withdrawals")
	withdrawals.Use(middleware.AuthMiddleware())
	withdrawals.Use(middleware.ContextLogger(logger))
	{
		withdrawals.GET("/available",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "withdrawal", "read"),
			handler.Availability,
		)

		withdrawals.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "withdrawal", "read"),
			handler.GetMine,
		)

		withdrawals.GET("/company",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "withdrawal", "approve"),
			handler.GetAll,
		)

		withdrawals.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.ExtractUserID(),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "withdrawal", "create"),
			handler.Request,
		)

		withdrawals.POST("/:id/approve",
			middleware.RateLimitByUser(0.5, 2),
			middleware.ExtractUserID(),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "withdrawal", "approve"),
			handler.Approve,
		)

		withdrawals.POST("/:id/reject",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "withdrawal", "approve"),
			handler.Reject,
		)
	}

	repayments := r.Group("/repayments")
	repayments.Use(middleware.AuthMiddleware())
	repayments.Use(middleware.ContextLogger(logger))
	{
		repayments.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "repayment", "create"),
			handler.RecordRepayment,
		)
	}
}

package earning

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
	earnings := r.Group("/earnings")
	earnings.Use(middleware.AuthMiddleware())
	earnings.Use(middleware.ContextLogger(logger))
	{
		earnings.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "earning", "read"),
			handler.GetEarnings,
		)

		earnings.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "earning", "create"),
			handler.Record,
		)

		earnings.GET("/rolling-average",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "earning", "read"),
			handler.RollingAverage,
		)

		earnings.GET("/limit",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "earning", "read"),
			handler.WithdrawalLimit,
		)

		earnings.GET("/withdrawals",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "earning", "read"),
			handler.GetInstantWithdrawals,
		)

		earnings.POST("/withdrawals",
			middleware.RateLimitByUser(0.5, 2),
			middleware.ExtractUserID(),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "earning", "create"),
			handler.InstantWithdrawal,
		)
	}
}

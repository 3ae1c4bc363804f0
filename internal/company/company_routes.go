package company

import (
	"zestpay/internal/middleware"
	"zestpay/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	companies := r.Group("/companies")
	{
		// Company-admin signup, happens before any token exists.
		companies.POST("", middleware.RateLimitByIP(0.1, 2), handler.Onboard)
		companies.GET("/me",
			middleware.AuthMiddleware(),
			middleware.RBACAuthorize(rbacService, "company", "read"),
			handler.GetMine,
		)
	}
}

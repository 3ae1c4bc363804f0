package app

import (
	"path/filepath"

	"zestpay/internal/auth"
	"zestpay/internal/company"
	"zestpay/internal/disbursement"
	"zestpay/internal/earning"
	"zestpay/internal/employee"
	"zestpay/internal/messaging/kafka"
	"zestpay/internal/rbac"
	"zestpay/internal/rbac/infra"
	rbachttp "zestpay/internal/rbac/rbac_http"
	"zestpay/internal/shared/counter"
	"zestpay/internal/subscription"
	"zestpay/internal/withdrawal"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	disbursementRepo := disbursement.NewRepository(gormDB)
	earningRepo := earning.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	subscriptionRepo := subscription.NewRepository(gormDB)
	withdrawalRepo := withdrawal.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	authService := auth.NewService(gormDB, authRepo, rbacService, employeeRepo, companyRepo)
	companyService := company.NewService(companyRepo)
	disbursementService := disbursement.NewService(disbursementRepo)
	employeeService := employee.NewService(gormDB, employeeRepo, companyRepo, rdb)
	subscriptionService := subscription.NewService(subscriptionRepo)
	earningService := earning.NewService(gormDB, earningRepo, companyRepo, counterRepo, subscriptionService, outboxRepo)
	withdrawalService := withdrawal.NewService(gormDB, withdrawalRepo, companyRepo, counterRepo, subscriptionService, outboxRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	disbursementHandler := disbursement.NewHandler(disbursementService)
	earningHandler := earning.NewHandler(earningService, rdb)
	employeeHandler := employee.NewHandler(employeeService)
	rbacHandler := rbac.NewHandler(rbacService, rbacRepo)
	subscriptionHandler := subscription.NewHandler(subscriptionService)
	withdrawalHandler := withdrawal.NewHandler(withdrawalService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler, rbacService)
		disbursement.RegisterRoutes(api, disbursementHandler, rbacService, logger)
		earning.RegisterRoutes(api, earningHandler, rbacService, rdb, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		subscription.RegisterRoutes(api, subscriptionHandler, rbacService, logger)
		withdrawal.RegisterRoutes(api, withdrawalHandler, rbacService, rdb, logger)
		rbachttp.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}

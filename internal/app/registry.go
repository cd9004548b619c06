package app

import (
	"database/sql"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-leaveflow/internal/audit"
	"go-leaveflow/internal/employee"
	"go-leaveflow/internal/leaverequest"
	"go-leaveflow/internal/messaging/kafka"
	"go-leaveflow/internal/middleware"
	"go-leaveflow/internal/rbac"
	"go-leaveflow/internal/rbac/infra"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("configs", "rbac_model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo, rdb)
	leaveRequestService := leaverequest.NewServiceWithOutbox(
		db,
		leaveRequestRepo,
		employeeService,
		auditRepo,
		outboxRepo,
	)

	// --- Handlers ---
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(20, 50))
	api := router.Group("/api/v1")
	{
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rbacService, rdb, zap.L())
	}

	return nil
}

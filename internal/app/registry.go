package app

import (
	"database/sql"
	"path/filepath"

	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"
	"go-hrms/internal/rbac/infra"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	departmentService := department.NewService(db, departmentRepo, employeeRepo, userRepo, logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb, logger)
	userService := user.NewService(userRepo)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	userHandler := user.NewHandler(userService, logger)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		department.RegisterRoutes(api, departmentHandler, rbacService, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		user.RegisterRoutes(api, userHandler, rbacService, logger)
	}

	return nil
}

package app

import (
	"database/sql"
	"os"

	"hrms/internal/auth"
	"hrms/internal/company"
	"hrms/internal/expenditure"
	"hrms/internal/expendituretype"
	"hrms/internal/leave"
	"hrms/internal/leavetype"
	"hrms/internal/messaging/kafka"
	"hrms/internal/middleware"
	"hrms/internal/notification"
	"hrms/internal/rbac"
	"hrms/internal/rbac/infra"
	"hrms/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Shared Middleware ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	// --- Repositories ---
	companyRepo := company.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	expenditureTypeRepo := expendituretype.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	expenditureRepo := expenditure.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	authService := auth.NewService(userRepo)
	companyService := company.NewService(companyRepo)
	userService := user.NewService(userRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo, rdb)
	expenditureTypeService := expendituretype.NewService(expenditureTypeRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo, leaveTypeRepo, outboxRepo)
	expenditureService := expenditure.NewService(
		db,
		expenditureRepo,
		expenditureTypeRepo,
		userRepo,
		companyRepo,
		outboxRepo,
		os.Getenv("EXPENDITURE_ENFORCE_PRICE_RANGE") == "true",
	)
	notificationService := notification.NewService(notificationRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	userHandler := user.NewHandler(userService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	expenditureTypeHandler := expendituretype.NewHandler(expenditureTypeService)
	leaveHandler := leave.NewHandler(leaveService)
	expenditureHandler := expenditure.NewHandler(expenditureService)
	notificationHandler := notification.NewHandler(notificationService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler, rbacService)
		user.RegisterRoutes(api, userHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		expendituretype.RegisterRoutes(api, expenditureTypeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		expenditure.RegisterRoutes(api, expenditureHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
	}

	return nil
}

package app

import (
	"database/sql"
	"os"

	"github.com/CodiWebSite/poni-connect-sub002/internal/auth"
	"github.com/CodiWebSite/poni-connect-sub002/internal/balance"
	"github.com/CodiWebSite/poni-connect-sub002/internal/calendar"
	"github.com/CodiWebSite/poni-connect-sub002/internal/department"
	"github.com/CodiWebSite/poni-connect-sub002/internal/employee"
	"github.com/CodiWebSite/poni-connect-sub002/internal/leaverequest"
	"github.com/CodiWebSite/poni-connect-sub002/internal/mailer"
	"github.com/CodiWebSite/poni-connect-sub002/internal/messaging/kafka"
	"github.com/CodiWebSite/poni-connect-sub002/internal/notification"
	"github.com/CodiWebSite/poni-connect-sub002/internal/rbac"
	"github.com/CodiWebSite/poni-connect-sub002/internal/shared/counter"
	"github.com/CodiWebSite/poni-connect-sub002/internal/signature"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	calendarRepo := calendar.NewRepository(gormDB)
	carryoverRepo := balance.NewCarryoverRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	signatureRepo := signature.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo, employeeRepo)
	balanceService := balance.NewService(employeeRepo, carryoverRepo, balance.DefaultThresholds(), rdb)
	calendarService := calendar.NewService(db, calendarRepo, rdb)
	departmentService := department.NewService(db, departmentRepo)
	employeeService := employee.NewService(db, employeeRepo)
	signatureService := signature.NewService(signatureRepo)
	leaveRequestService := leaverequest.NewService(
		db,
		leaveRequestRepo,
		employeeRepo,
		departmentRepo,
		calendarService,
		balanceService,
		signatureService,
		counterRepo,
		outboxRepo,
	)
	notificationService := notification.NewService(notificationRepo, authRepo, departmentRepo, buildMailer())

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	balanceHandler := balance.NewHandler(balanceService)
	calendarHandler := calendar.NewHandler(calendarService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService)
	notificationHandler := notification.NewHandler(notificationService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		calendar.RegisterRoutes(api, calendarHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
	}

	return nil
}

// buildMailer picks SMTP when a relay is configured, otherwise mail goes
// to the log.
func buildMailer() mailer.Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return mailer.NewLogMailer()
	}
	return mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     host,
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	})
}

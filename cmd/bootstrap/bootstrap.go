package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/REINA-08/autamedica-reboot-deploy/config"
	deliveryHttp "github.com/REINA-08/autamedica-reboot-deploy/internal/delivery/http"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/delivery/http/handler"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/delivery/http/middleware"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/infrastructure/cache"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/infrastructure/database"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/repository"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/service"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/usecase"
	"github.com/REINA-08/autamedica-reboot-deploy/internal/worker"
	"github.com/REINA-08/autamedica-reboot-deploy/pkg/jwt"
	"github.com/REINA-08/autamedica-reboot-deploy/pkg/mailer"
	"github.com/REINA-08/autamedica-reboot-deploy/pkg/validator"
)

// App holds all dependencies for the application
type App struct {
	Config         *config.Config
	DB             *gorm.DB
	RedisClient    *redis.Client
	Server         *http.Server
	ReminderWorker *worker.ReminderWorker
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations before opening the pool
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logrus.Info("Migrations applied successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.initialize()

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initialize wires repositories, services, usecases, handlers and the HTTP
// server onto the App.
func (app *App) initialize() {
	cfg := app.Config
	db := app.DB
	redisClient := app.RedisClient
	log := logrus.StandardLogger()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	notificationLogRepo := repository.NewNotificationLogRepository()

	// Initialize notification pipeline
	transport := mailer.NewSMTPTransport(cfg.SMTP)
	renderer, err := service.NewHTMLTemplateRenderer()
	if err != nil {
		// Dispatch degrades to the built-in minimal bodies.
		log.Warnf("Failed to load notification templates: %+v", err)
		renderer = nil
	}
	calendar := service.NewCalendarService()
	notifier := service.NewNotificationService(db, log, transport, templateRendererOrNil(renderer), calendar, notificationLogRepo, cfg.Notification)
	documents := service.NewDocumentService(log)

	// Initialize usecases
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, doctorRepo, patientRepo, notifier, documents)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo)

	// Initialize handlers
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(appointmentHandler, doctorHandler, patientHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	app.ReminderWorker = worker.NewReminderWorker(db, log, appointmentRepo, notifier, redisClient, cfg.Reminder.Interval, cfg.Reminder.Window)

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// templateRendererOrNil keeps a typed-nil *HTMLTemplateRenderer from
// sneaking into the TemplateRenderer interface value.
func templateRendererOrNil(r *service.HTMLTemplateRenderer) service.TemplateRenderer {
	if r == nil {
		return nil
	}
	return r
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

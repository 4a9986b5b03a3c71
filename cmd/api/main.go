package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightsales/leadtrack-api/docs"
	"github.com/brightsales/leadtrack-api/internal/auth"
	"github.com/brightsales/leadtrack-api/internal/config"
	"github.com/brightsales/leadtrack-api/internal/database"
	"github.com/brightsales/leadtrack-api/internal/http/handler"
	"github.com/brightsales/leadtrack-api/internal/http/middleware"
	"github.com/brightsales/leadtrack-api/internal/http/router"
	"github.com/brightsales/leadtrack-api/internal/jobs"
	"github.com/brightsales/leadtrack-api/internal/logger"
	"github.com/brightsales/leadtrack-api/internal/repository"
	"github.com/brightsales/leadtrack-api/internal/service"
	"go.uber.org/zap"
)

// @title Leadtrack API
// @version 1.0
// @description Lead management API with daily statistics aggregation and employee performance tracking

// @contact.name API Support
// @contact.email support@brightsales.io

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch cfg.App.Environment {
	case "production":
		docs.SwaggerInfo.Host = "api.brightsales.io"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.App.Port)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize repositories
	leadRepo := repository.NewLeadRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	leadStatsService := service.NewLeadStatsService(leadRepo, employeeRepo, departmentRepo, log)
	performanceService := service.NewPerformanceService(log)
	leadService := service.NewLeadService(leadRepo, employeeRepo, log)
	employeeService := service.NewEmployeeService(employeeRepo, departmentRepo, log)
	departmentService := service.NewDepartmentService(departmentRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(&cfg.Auth, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	leadStatsHandler := handler.NewLeadStatsHandler(leadStatsService, employeeService, performanceService, log)
	leadHandler := handler.NewLeadHandler(leadService, log)
	employeeHandler := handler.NewEmployeeHandler(employeeService, log)
	departmentHandler := handler.NewDepartmentHandler(departmentService, log)
	authHandler := handler.NewAuthHandler(userRepo, authMiddleware.Issuer(), &cfg.Auth, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		leadStatsHandler,
		leadHandler,
		employeeHandler,
		departmentHandler,
		authHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.CallbackReminderEnabled {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterCallbackReminderJob(
			scheduler,
			leadRepo,
			log,
			cfg.Jobs.CallbackReminderCron,
		); err != nil {
			log.Error("Failed to register callback reminder job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with callback reminder job",
				zap.String("cron_expr", cfg.Jobs.CallbackReminderCron),
			)
		}
	} else {
		log.Info("Callback reminder job disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aurybot/aury-backend/internal/api/handlers"
	"github.com/aurybot/aury-backend/internal/api/router"
	"github.com/aurybot/aury-backend/internal/assistant"
	"github.com/aurybot/aury-backend/internal/config"
	"github.com/aurybot/aury-backend/internal/llm"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
	"github.com/aurybot/aury-backend/internal/repository/sqlite"
	"github.com/aurybot/aury-backend/internal/services"
	"github.com/aurybot/aury-backend/internal/worker"
	"github.com/aurybot/aury-backend/migrations"
)

// @title Aury API
// @version 1.0
// @description Personal assistant backend: notes, tasks, habits, calendar, smart home, and an AI chat companion.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := sqlite.New(cfg.Database)
	if err != nil {
		appLogger.ErrorWithErr(err, "Failed to open database")
		os.Exit(1)
	}
	defer db.Close()

	if err := sqlite.RunMigrations(db, migrations.GetFS()); err != nil {
		appLogger.ErrorWithErr(err, "Failed to run migrations")
		os.Exit(1)
	}

	// Repositories
	userRepo := sqlite.NewUserRepository(db)
	noteRepo := sqlite.NewNoteRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	eventRepo := sqlite.NewEventRepository(db)
	habitRepo := sqlite.NewHabitRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	deviceRepo := sqlite.NewDeviceRepository(db)
	integrationRepo := sqlite.NewIntegrationRepository(db)
	ticketRepo := sqlite.NewTicketRepository(db)
	paymentRepo := sqlite.NewPaymentRepository(db)

	// Services
	quotaService := services.NewQuotaService(userRepo, noteRepo, taskRepo, habitRepo, projectRepo, appLogger)
	userService := services.NewUserService(userRepo, cfg.Auth.PremiumAccountEmail, appLogger)

	llmClient := llm.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.MaxTokens, cfg.LLM.Timeout)
	chatCache := assistant.NewContextCache(cfg.Assistant.ContextTurns)
	assistantService := assistant.NewService(llmClient, chatCache, userRepo, taskRepo, quotaService, appLogger)

	noteService := services.NewNoteService(noteRepo, quotaService, llmClient, appLogger)
	taskService := services.NewTaskService(taskRepo, quotaService, appLogger)
	eventService := services.NewEventService(eventRepo, appLogger)
	habitService := services.NewHabitService(habitRepo, quotaService, appLogger)
	projectService := services.NewProjectService(projectRepo, quotaService, cfg.Uploads.Dir, cfg.Uploads.MaxFileSize, appLogger)
	deviceService := services.NewDeviceService(deviceRepo, appLogger)
	integrationService := services.NewIntegrationService(integrationRepo, appLogger)
	ticketService := services.NewTicketService(ticketRepo, appLogger)
	paymentService := services.NewPaymentService(paymentRepo, userService, cfg.Billing.PremiumDays, appLogger)
	dashboardService := services.NewDashboardService(userRepo, noteRepo, taskRepo, eventRepo, habitRepo, projectRepo, integrationRepo)

	// Handlers
	val := validator.New()
	h := &router.Handlers{
		Health:      handlers.NewHealthHandler(db, appLogger),
		Auth:        handlers.NewAuthHandler(userService, cfg, appLogger, val),
		Note:        handlers.NewNoteHandler(noteService, appLogger, val),
		Task:        handlers.NewTaskHandler(taskService, appLogger, val),
		Event:       handlers.NewEventHandler(eventService, appLogger, val),
		Habit:       handlers.NewHabitHandler(habitService, appLogger, val),
		Project:     handlers.NewProjectHandler(projectService, appLogger, val),
		Device:      handlers.NewDeviceHandler(deviceService, appLogger, val),
		Integration: handlers.NewIntegrationHandler(integrationService, appLogger, val),
		Ticket:      handlers.NewTicketHandler(ticketService, appLogger, val),
		Chat:        handlers.NewChatHandler(assistantService, appLogger, val),
		Assistant:   handlers.NewAssistantHandler(userService, appLogger, val),
		Billing:     handlers.NewBillingHandler(paymentService, cfg.Billing, appLogger, val),
		Dashboard:   handlers.NewDashboardHandler(dashboardService, appLogger),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, appLogger, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Background workers
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	expiryWorker := worker.NewPremiumExpiry(userRepo, userService, appLogger)
	if err := expiryWorker.Start(workerCtx); err != nil {
		appLogger.ErrorWithErr(err, "Failed to start premium expiry worker")
		os.Exit(1)
	}

	go func() {
		appLogger.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.ErrorWithErr(err, "Server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")

	cancelWorkers()
	expiryWorker.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.ErrorWithErr(err, "Forced shutdown")
	}

	appLogger.Info("Server stopped")
}

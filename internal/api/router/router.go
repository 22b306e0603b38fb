package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/aurybot/aury-backend/internal/api/handlers"
	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/config"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/metrics"
)

// Handlers bundles all HTTP handlers for route registration
type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Note        *handlers.NoteHandler
	Task        *handlers.TaskHandler
	Event       *handlers.EventHandler
	Habit       *handlers.HabitHandler
	Project     *handlers.ProjectHandler
	Device      *handlers.DeviceHandler
	Integration *handlers.IntegrationHandler
	Ticket      *handlers.TicketHandler
	Chat        *handlers.ChatHandler
	Assistant   *handlers.AssistantHandler
	Billing     *handlers.BillingHandler
	Dashboard   *handlers.DashboardHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200
	r.Use(metrics.Middleware)

	// Public routes
	r.Group(func(r chi.Router) {
		// Swagger documentation
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		// Prometheus metrics
		r.Handle("/metrics", metrics.Handler())

		// Health checks
		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)

		// Auth endpoints
		r.Post("/api/auth/register", h.Auth.Register)
		r.Post("/api/auth/login", h.Auth.Login)
		r.Post("/api/auth/refresh", h.Auth.RefreshToken)
		r.Post("/api/auth/logout", h.Auth.Logout)

		// Plans and payment instructions are public
		r.Get("/api/plans", h.Billing.ListPlans)
		r.Get("/api/billing/info", h.Billing.PaymentInfo)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
		r.Use(middleware.UserRateLimit(20, 40))

		// Auth
		r.Get("/api/auth/me", h.Auth.Me)
		r.Put("/api/auth/me", h.Auth.UpdateMe)

		// Notes
		r.Route("/api/notes", func(r chi.Router) {
			r.Get("/", h.Note.List)
			r.Post("/", h.Note.Create)
			r.Get("/{id}", h.Note.Get)
			r.Put("/{id}", h.Note.Update)
			r.Delete("/{id}", h.Note.Delete)
			r.Post("/{id}/analyze", h.Note.Analyze)
		})

		// Tasks
		r.Route("/api/tasks", func(r chi.Router) {
			r.Get("/", h.Task.List)
			r.Post("/", h.Task.Create)
			r.Get("/{id}", h.Task.Get)
			r.Put("/{id}", h.Task.Update)
			r.Delete("/{id}", h.Task.Delete)
		})

		// Calendar events
		r.Route("/api/events", func(r chi.Router) {
			r.Get("/", h.Event.List)
			r.Post("/", h.Event.Create)
			r.Get("/{id}", h.Event.Get)
			r.Put("/{id}", h.Event.Update)
			r.Delete("/{id}", h.Event.Delete)
		})

		// Habits
		r.Route("/api/habits", func(r chi.Router) {
			r.Get("/", h.Habit.List)
			r.Post("/", h.Habit.Create)
			r.Get("/{id}", h.Habit.Get)
			r.Put("/{id}", h.Habit.Update)
			r.Delete("/{id}", h.Habit.Delete)
			r.Post("/{id}/complete", h.Habit.Complete)
		})

		// Projects and their files
		r.Route("/api/projects", func(r chi.Router) {
			r.Get("/", h.Project.List)
			r.Post("/", h.Project.Create)
			r.Get("/{id}", h.Project.Get)
			r.Put("/{id}", h.Project.Update)
			r.Delete("/{id}", h.Project.Delete)
			r.Post("/{id}/files", h.Project.UploadFile)
			r.Get("/{id}/files/{fileID}", h.Project.DownloadFile)
			r.Delete("/{id}/files/{fileID}", h.Project.DeleteFile)
		})

		// Smart devices
		r.Route("/api/devices", func(r chi.Router) {
			r.Get("/", h.Device.List)
			r.Post("/", h.Device.Register)
			r.Get("/{id}", h.Device.Get)
			r.Put("/{id}", h.Device.Update)
			r.Delete("/{id}", h.Device.Delete)
		})

		// Integrations
		r.Route("/api/integrations", func(r chi.Router) {
			r.Get("/", h.Integration.List)
			r.Post("/", h.Integration.Connect)
			r.Delete("/{id}", h.Integration.Disconnect)
		})

		// Support tickets
		r.Route("/api/tickets", func(r chi.Router) {
			r.Get("/", h.Ticket.List)
			r.Post("/", h.Ticket.Create)
			r.Get("/{id}", h.Ticket.Get)
			r.Put("/{id}", h.Ticket.UpdateStatus)
		})

		// Assistant chat
		r.Route("/api/ai", func(r chi.Router) {
			r.Post("/chat", h.Chat.Chat)
			r.Delete("/chat", h.Chat.ClearContext)
		})

		// Assistant configuration
		r.Route("/api/assistant/config", func(r chi.Router) {
			r.Get("/", h.Assistant.GetConfig)
			r.Put("/", h.Assistant.UpdateConfig)
		})

		// Billing
		r.Post("/api/billing/notify", h.Billing.NotifyPayment)
		r.Get("/api/billing/payments", h.Billing.ListPayments)

		// Payment review, restricted to the admin allowlist
		r.Route("/api/admin/payments", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(cfg.Auth.AdminEmails))
			r.Get("/", h.Billing.ListPendingPayments)
			r.Post("/{id}/review", h.Billing.ReviewPayment)
		})

		// Dashboard
		r.Get("/api/dashboard", h.Dashboard.Overview)
	})

	return r
}

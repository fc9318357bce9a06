package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/pratik-mahalle/freelancehub/docs"
	"github.com/pratik-mahalle/freelancehub/internal/api/handlers"
	"github.com/pratik-mahalle/freelancehub/internal/api/middleware"
	"github.com/pratik-mahalle/freelancehub/internal/config"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/metrics"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Entitlement *handlers.EntitlementHandler
	Insight     *handlers.InsightHandler
	Client      *handlers.ClientHandler
	Project     *handlers.ProjectHandler
	Invoice     *handlers.InvoiceHandler
	TimeEntry   *handlers.TimeEntryHandler
}

// New builds the API router. ctx bounds the router's background work.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, auth gateway.AuthProvider, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORS(cfg.Server))
	r.Use(metrics.Middleware)
	r.Use(middleware.RateLimit(ctx, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
		r.Handle("/metrics", metrics.Handler())

		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
	})

	// Protected routes (require a session)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.SecurityHeaders(cfg.Server.IsProduction()))
		r.Use(middleware.AuthMiddleware(auth))
		r.Use(middleware.UserRateLimit(ctx, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

		r.Get("/auth/me", h.Auth.Me)
		r.Post("/auth/logout", h.Auth.Logout)

		r.Get("/entitlement", h.Entitlement.Get)
		r.Get("/entitlement/limits/{feature}", h.Entitlement.CheckLimit)

		r.Get("/insights", h.Insight.List)
		r.Get("/insights/summary", h.Insight.Summary)

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.Client.List)
			r.Post("/", h.Client.Create)
			r.Get("/{id}", h.Client.Get)
			r.Put("/{id}", h.Client.Update)
			r.Delete("/{id}", h.Client.Delete)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.Project.List)
			r.Post("/", h.Project.Create)
			r.Get("/{id}", h.Project.Get)
			r.Put("/{id}", h.Project.Update)
			r.Delete("/{id}", h.Project.Delete)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", h.Invoice.List)
			r.Post("/", h.Invoice.Create)
			r.Get("/{id}", h.Invoice.Get)
			r.Put("/{id}", h.Invoice.Update)
			r.Delete("/{id}", h.Invoice.Delete)
			r.Post("/{id}/send", h.Invoice.Send)
			r.Post("/{id}/pay", h.Invoice.Pay)
		})

		r.Route("/time-entries", func(r chi.Router) {
			r.Get("/", h.TimeEntry.List)
			r.Post("/", h.TimeEntry.Create)
			r.Get("/{id}", h.TimeEntry.Get)
			r.Put("/{id}", h.TimeEntry.Update)
			r.Delete("/{id}", h.TimeEntry.Delete)
		})
	})

	return r
}

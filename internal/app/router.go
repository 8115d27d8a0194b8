package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/billforge/billforge/internal/analytics"
	"github.com/billforge/billforge/internal/business"
	"github.com/billforge/billforge/internal/clients"
	"github.com/billforge/billforge/internal/entitlement"
	"github.com/billforge/billforge/internal/invoices"
	"github.com/billforge/billforge/internal/observability"
	"github.com/billforge/billforge/internal/recurring"
	"github.com/billforge/billforge/internal/timetracking"
	"github.com/billforge/billforge/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	BusinessHandler    *business.Handler
	ClientsHandler     *clients.Handler
	InvoicesHandler    *invoices.Handler
	TimeHandler        *timetracking.Handler
	RecurringHandler   *recurring.Handler
	AnalyticsHandler   *analytics.Handler
	EntitlementHandler *entitlement.Handler
	JobsHandler        *jobs.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with BillForge defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		if params.BusinessHandler != nil {
			r.Route("/business", params.BusinessHandler.MountRoutes)
		}
		if params.ClientsHandler != nil {
			r.Route("/clients", params.ClientsHandler.MountRoutes)
		}
		if params.InvoicesHandler != nil {
			r.Route("/invoices", params.InvoicesHandler.MountRoutes)
		}
		if params.TimeHandler != nil {
			r.Route("/time-entries", params.TimeHandler.MountRoutes)
		}
		if params.RecurringHandler != nil {
			r.Route("/recurring", params.RecurringHandler.MountRoutes)
		}
		if params.AnalyticsHandler != nil {
			r.Route("/analytics", params.AnalyticsHandler.MountRoutes)
		}
		if params.EntitlementHandler != nil {
			r.Route("/pro", params.EntitlementHandler.MountRoutes)
		}
	})

	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}

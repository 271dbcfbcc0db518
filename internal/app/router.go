package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridian-crm/meridian-crm/internal/audit"
	"github.com/meridian-crm/meridian-crm/internal/auth"
	"github.com/meridian-crm/meridian-crm/internal/dashboard"
	"github.com/meridian-crm/meridian-crm/internal/documents"
	"github.com/meridian-crm/meridian-crm/internal/leads"
	"github.com/meridian-crm/meridian-crm/internal/masterdata/items"
	"github.com/meridian-crm/meridian-crm/internal/masterdata/parties"
	"github.com/meridian-crm/meridian-crm/internal/observability"
	"github.com/meridian-crm/meridian-crm/internal/reports"
	"github.com/meridian-crm/meridian-crm/internal/settings"
	"github.com/meridian-crm/meridian-crm/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Metrics          *observability.Metrics
	AuthService      *auth.Service
	AuthHandler      *auth.Handler
	PartiesHandler   *parties.Handler
	ItemsHandler     *items.Handler
	LeadsHandler     *leads.Handler
	DocumentsHandler *documents.Handler
	SettingsHandler  *settings.Handler
	DashboardHandler *dashboard.Handler
	ReportsHandler   *reports.Handler
	AuditHandler     *audit.Handler
	JobHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with Meridian defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	r.Use(params.Metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", params.Metrics.Handler())

	params.AuthHandler.MountPublicRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(params.AuthService.RequireAuth)

		params.AuthHandler.MountProtectedRoutes(r)
		params.PartiesHandler.MountRoutes(r)
		params.ItemsHandler.MountRoutes(r)
		params.LeadsHandler.MountRoutes(r)
		params.DocumentsHandler.MountRoutes(r)
		params.SettingsHandler.MountRoutes(r)
		params.DashboardHandler.MountRoutes(r)
		params.ReportsHandler.MountRoutes(r)
		params.AuditHandler.MountRoutes(r)
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}

package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/century-soap/century-soap/internal/auth"
	"github.com/century-soap/century-soap/internal/catalog"
	"github.com/century-soap/century-soap/internal/clients"
	"github.com/century-soap/century-soap/internal/inventory"
	"github.com/century-soap/century-soap/internal/observability"
	"github.com/century-soap/century-soap/internal/reports"
	"github.com/century-soap/century-soap/internal/sales"
	"github.com/century-soap/century-soap/internal/users"
	"github.com/century-soap/century-soap/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthService      *auth.Service
	AuthHandler      *auth.Handler
	CatalogHandler   *catalog.Handler
	InventoryHandler *inventory.Handler
	SalesHandler     *sales.Handler
	ClientsHandler   *clients.Handler
	ReportsHandler   *reports.Handler
	UsersHandler     *users.Handler
	JobsHandler      *jobs.Handler
	Pool             *pgxpool.Pool
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(params.Config, params.Metrics) {
		r.Use(mw)
	}
	r.Use(auth.Middleware(params.AuthService, params.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if params.Pool != nil {
			if err := params.Pool.Ping(req.Context()); err != nil {
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		params.AuthHandler.MountRoutes(api)
		params.CatalogHandler.MountRoutes(api)
		params.InventoryHandler.MountRoutes(api)
		params.SalesHandler.MountRoutes(api)
		params.ClientsHandler.MountRoutes(api)
		params.ReportsHandler.MountRoutes(api)
		params.UsersHandler.MountRoutes(api)
		params.JobsHandler.MountRoutes(api)
	})

	return r
}

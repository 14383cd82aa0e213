package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sherpa-labs/sherpa/internal/events"
	"github.com/sherpa-labs/sherpa/internal/flatfile"
	"github.com/sherpa-labs/sherpa/internal/store"
)

// BackupSeeder copies live documents into the backup tree when it is empty.
type BackupSeeder interface {
	SeedBackups() error
}

// Deps carries everything the HTTP layer needs. Events and Seeder may be
// nil; Subnets may be nil when no record backend is configured.
type Deps struct {
	Frameworks store.FrameworkStore
	Compasses  store.CompassStore
	Subnets    store.SubnetStore
	Table      *flatfile.File
	Events     events.Client
	Seeder     BackupSeeder
	AdminToken string
	Logger     *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(d.Logger))
	r.Use(RateLimitMiddleware(120))

	frameworks := NewFrameworksHandler(d.Frameworks, d.Events)
	compasses := NewCompassesHandler(d.Compasses, d.Frameworks, d.Subnets, d.Events)
	evaluate := NewEvaluateHandler(d.Frameworks)
	charts := NewChartsHandler(d.Compasses, d.Table)
	subnets := NewSubnetsHandler(d.Subnets, d.Table, d.Events)
	admin := NewAdminHandler(d.Frameworks, d.Compasses, d.Subnets, d.Table, d.Seeder)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/evaluate", evaluate.Evaluate)

		r.Route("/frameworks", func(r chi.Router) {
			r.Get("/", frameworks.List)
			r.Post("/", frameworks.Save)
			r.Get("/{name}", frameworks.Get)
			r.Put("/{name}", frameworks.Save)
			r.Delete("/{name}", frameworks.Delete)
			r.Post("/{name}/activate", frameworks.Activate)
			r.Post("/{name}/deactivate", frameworks.Deactivate)
		})

		r.Route("/compasses", func(r chi.Router) {
			r.Get("/", compasses.List)
			r.Post("/", compasses.Save)
			r.Get("/{name}", compasses.Get)
			r.Put("/{name}", compasses.Save)
			r.Delete("/{name}", compasses.Delete)
		})

		r.Route("/charts", func(r chi.Router) {
			r.Get("/quadrant", charts.Quadrant)
			r.Get("/map", charts.Map)
			r.Get("/scores", charts.Scores)
		})

		r.Route("/subnets", func(r chi.Router) {
			r.Get("/", subnets.List)
			r.Get("/export", subnets.Export)
			r.Post("/import", subnets.Import)
			r.Get("/{id}", subnets.Get)
			r.Delete("/{id}", subnets.Delete)
			r.With(AdminAuthMiddleware(d.AdminToken)).Delete("/", subnets.Clear)
		})

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(d.AdminToken))
			r.Get("/stats", admin.Stats)
			r.Post("/backups/seed", admin.SeedBackups)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

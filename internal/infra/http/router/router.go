package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/recruit-pipeline/internal/infra/http/handlers"
	metrics "github.com/xavierca1/recruit-pipeline/internal/infra/http/middleware"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Candidates *handlers.CandidateHandler
	Dashboard  *handlers.DashboardHandler
	Automation *handlers.AutomationHandler
}

type Options struct {
	AllowedOrigins []string
	Limiter        *metrics.WriteLimiter
}

func New(h Handlers, opts Options) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(metrics.Metrics)

	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Handler)
		}

		r.Route("/candidates", func(r chi.Router) {
			r.Get("/", h.Candidates.List)
			r.Post("/", h.Candidates.Create)
			r.Get("/stage/{stage}", h.Candidates.ListByStage)
			r.Get("/{id}", h.Candidates.Get)
			r.Put("/{id}", h.Candidates.Update)
			r.Delete("/{id}", h.Candidates.Delete)
			r.Patch("/{id}/stage", h.Candidates.ChangeStage)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/metrics", h.Dashboard.Metrics)
			r.Get("/scorecard", h.Dashboard.Scorecard)
		})

		r.Route("/automation", func(r chi.Router) {
			r.Get("/settings", h.Automation.GetSettings)
			r.Put("/settings", h.Automation.UpdateSettings)
			r.Post("/email", h.Automation.QueueEmail)
			r.Post("/schedule", h.Automation.ScheduleInterview)
			r.Get("/status/{candidateId}", h.Automation.Status)
		})
	})

	return r
}

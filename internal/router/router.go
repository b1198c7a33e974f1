package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"bug-tracker/internal/config"
	"bug-tracker/internal/handlers"
	"bug-tracker/internal/metrics"
	"bug-tracker/internal/middleware"
	"bug-tracker/internal/repository"
	"bug-tracker/internal/service"
)

func New(log zerolog.Logger, bugRepo repository.BugRepository, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	if cfg.RateLimitPerMin > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimitPerMin, time.Minute))
	}

	bugs := service.NewBugService(bugRepo, log, cfg.RequestTimeout)
	bh := handlers.NewBugHTTP(bugs, log, cfg.Env == "dev")

	// Health + metrics
	r.Get("/healthz", handlers.Health(bugs))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/bugs", func(r chi.Router) {
		r.Get("/", bh.List())
		r.Post("/", bh.Create())
		r.Get("/stats", bh.Stats())
		r.Route("/{id}", func(r chi.Router) {
			r.Use(middleware.ValidateID("id"))
			r.Get("/", bh.Get())
			r.Put("/", bh.Update())
			r.Delete("/", bh.Delete())
		})
	})

	return r
}

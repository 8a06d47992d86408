package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Matchup/internal/broker"
)

func NewRouter(b *broker.Broker, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(600))

	dataset := NewDatasetHandler(b)
	teams := NewTeamsHandler(b)
	field := NewFieldHandler(b)
	matchup := NewMatchupHandler(b)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/teams", teams.List)
		r.Get("/teams/{name}", teams.Get)
		r.Get("/field", field.Get)
		r.Get("/matchup", matchup.Compare)
		r.Get("/bracket/rounds", matchup.Rounds)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/dataset", dataset.Export)
			r.Post("/dataset", dataset.Upload)
			r.Post("/dataset/reload", dataset.Reload)
		})
	})

	return r
}

// NewMetricsRouter serves health and the collectors gathered from g.
func NewMetricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}

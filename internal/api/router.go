package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"country-data/internal/metrics"
	"country-data/internal/middleware"
)

// NewRouter creates and configures the gateway router. m may be nil, in which
// case /metrics is not mounted.
func NewRouter(h *CountryHandler, logger *zap.Logger, m *metrics.Metrics) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Observe(logger, m))
	r.Use(middleware.CORS)

	r.Get("/healthz", h.Health)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/countries", func(r chi.Router) {
		r.Get("/", h.ListCountries)
		r.Get("/search", h.SearchCountries)
		r.Get("/region/{region}", h.FilterByRegion)
		r.Get("/{code}", h.GetCountryByCode)
	})
	return r
}

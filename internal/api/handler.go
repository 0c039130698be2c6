package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"country-data/internal/middleware"
	"country-data/internal/service"
)

// Fixed failure payloads. Upstream error detail is logged, never returned.
const (
	msgListFailed   = "Failed to fetch countries data"
	msgDetailFailed = "Failed to fetch country data"
	msgRegionFailed = "Failed to fetch countries data by region"
	msgSearchFailed = "Failed to search countries"
)

// CountryHandler handles HTTP requests for country information.
type CountryHandler struct {
	service service.CountryService
	logger  *zap.Logger
}

// NewCountryHandler creates a new handler with a given service.
func NewCountryHandler(s service.CountryService, logger *zap.Logger) *CountryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CountryHandler{
		service: s,
		logger:  logger,
	}
}

// ListCountries serves GET /countries.
func (h *CountryHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, msgListFailed, err)
		return
	}
	h.respondJSON(w, http.StatusOK, countries)
}

// GetCountryByCode serves GET /countries/{code}.
func (h *CountryHandler) GetCountryByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	country, err := h.service.ByCode(r.Context(), code)
	if err != nil {
		h.fail(w, r, msgDetailFailed, err, zap.String("code", code))
		return
	}
	h.respondJSON(w, http.StatusOK, country)
}

// FilterByRegion serves GET /countries/region/{region}.
func (h *CountryHandler) FilterByRegion(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")

	countries, err := h.service.ByRegion(r.Context(), region)
	if err != nil {
		h.fail(w, r, msgRegionFailed, err, zap.String("region", region))
		return
	}
	h.respondJSON(w, http.StatusOK, countries)
}

// SearchCountries serves GET /countries/search. Every query parameter is optional.
func (h *CountryHandler) SearchCountries(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := service.Query{
		Name:     params.Get("name"),
		Capital:  params.Get("capital"),
		Region:   params.Get("region"),
		Timezone: params.Get("timezone"),
	}

	countries, err := h.service.Search(r.Context(), q)
	if err != nil {
		h.fail(w, r, msgSearchFailed, err,
			zap.String("name", q.Name),
			zap.String("capital", q.Capital),
			zap.String("region", q.Region),
			zap.String("timezone", q.Timezone),
		)
		return
	}
	h.respondJSON(w, http.StatusOK, countries)
}

// Health serves GET /healthz without touching upstream.
func (h *CountryHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CountryHandler) fail(w http.ResponseWriter, r *http.Request, message string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("request_id", middleware.RequestIDFrom(r.Context())),
		zap.Error(err),
	)
	h.logger.Error(message, fields...)
	h.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: message})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *CountryHandler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
		http.Error(w, `{"error":"Failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(response); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}

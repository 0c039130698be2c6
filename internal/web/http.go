package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"country-data/internal/domain"
	"country-data/internal/metrics"
	"country-data/internal/middleware"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Server renders the country page from the Store. It never calls the gateway.
type Server struct {
	store   *Store
	logger  *zap.Logger
	metrics *metrics.Metrics
	router  *http.ServeMux
	handler http.Handler
}

// NewServer wires the routes. m may be nil, in which case /metrics is not mounted.
func NewServer(store *Store, logger *zap.Logger, m *metrics.Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		store:   store,
		logger:  logger,
		metrics: m,
		router:  http.NewServeMux(),
	}
	s.registerHandlers()
	s.handler = middleware.RequestID(middleware.Observe(logger, m)(s.router))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) registerHandlers() {
	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.HandleFunc("GET /healthz", s.handleHealth)
	if s.metrics != nil {
		s.router.Handle("GET /metrics", s.metrics.Handler())
	}
}

type card struct {
	Name   string
	Flag   string
	Region string
}

type page struct {
	Loading bool
	Error   string
	Search  string
	Region  string
	Regions []string
	Cards   []card
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var p page
	switch st := s.store.State().(type) {
	case Loading:
		p.Loading = true
	case Failed:
		p.Error = st.Message
	case Loaded:
		p.Search = r.URL.Query().Get("search")
		p.Region = r.URL.Query().Get("region")
		p.Regions = Regions
		p.Cards = cards(Filter(st.Countries, p.Search, p.Region))
	}
	s.render(w, p)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if _, loading := s.store.State().(Loading); loading {
		status = "loading"
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": status})
}

func cards(countries []domain.Summary) []card {
	out := make([]card, 0, len(countries))
	for _, c := range countries {
		out = append(out, card{
			Name:   domain.Deref(c.Name),
			Flag:   domain.Deref(c.Flag),
			Region: domain.Deref(c.Region),
		})
	}
	return out
}

func (s *Server) render(w http.ResponseWriter, p page) {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page", p); err != nil {
		s.logger.Error("failed to render page", zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(response); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

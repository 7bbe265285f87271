// Package api exposes the catalog, matching, similarity and questionnaire
// operations over HTTP for the display collaborator.
package api

import (
	"net/http"
	"time"

	"sake-reco/internal/catalog"
	"sake-reco/internal/common/config"
	"sake-reco/internal/common/logger"
	"sake-reco/internal/models"
	refreshcatalog "sake-reco/internal/workers/catalog/refresh-catalog"
	buildsakeresponse "sake-reco/internal/workers/recommendation/build-sake-response"
	findsimilarsake "sake-reco/internal/workers/recommendation/find-similar-sake"
	matchsake "sake-reco/internal/workers/recommendation/match-sake"
	parsepreferences "sake-reco/internal/workers/recommendation/parse-preferences"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Catalog is the read side of catalog.Store.
type Catalog interface {
	Items() []models.CatalogItem
	State() catalog.State
	Snapshot() *catalog.Snapshot
}

// Handlers are the job handlers the API shares with the Zeebe workers, so
// both surfaces run the same code path.
type Handlers struct {
	Refresh  *refreshcatalog.Handler
	Parse    *parsepreferences.Handler
	Match    *matchsake.Handler
	Similar  *findsimilarsake.Handler
	Response *buildsakeresponse.Handler
}

type Server struct {
	catalog  Catalog
	handlers Handlers
	sessions *SessionStore
	config   config.ServerConfig
	logger   logger.Logger
}

func NewServer(cfg config.ServerConfig, store Catalog, handlers Handlers, sessions *SessionStore, log logger.Logger) *Server {
	return &Server{
		catalog:  store,
		handlers: handlers,
		sessions: sessions,
		config:   cfg,
		logger:   log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", s.health)
	r.Get("/ready", s.ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", s.getCatalog)
		r.With(s.refreshLimit()).Post("/catalog/refresh", s.refreshCatalog)

		r.Post("/match", s.match)
		r.Get("/items/{id}/similar", s.similar)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.createSession)
			r.Get("/{id}", s.getSession)
			r.Post("/{id}/actions", s.applyActions)
			r.Post("/{id}/reset", s.resetSession)
			r.Post("/{id}/rematch", s.rematchSession)
		})
	})
	return r
}

// refreshLimit caps manual refreshes per client per minute. Zero or less
// disables the limit.
func (s *Server) refreshLimit() func(http.Handler) http.Handler {
	if s.config.RefreshRateLimit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(s.config.RefreshRateLimit, time.Minute)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"durationMs": time.Since(start).Milliseconds(),
			"requestId":  chimiddleware.GetReqID(r.Context()),
		})
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ready reports 503 until a catalog snapshot is available.
func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	state := s.catalog.State()
	status := http.StatusOK
	if s.catalog.Snapshot() == nil {
		status = http.StatusServiceUnavailable
	}
	s.respondJSON(w, status, state)
}

func chiRequestID(r *http.Request) string {
	return chimiddleware.GetReqID(r.Context())
}

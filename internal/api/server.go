// Package api exposes the search and order engine over HTTP. The engine
// itself stays a pure library; this layer owns decoding, validation and
// error-to-status mapping.
package api

import (
	"net/http"
	"strconv"
	"time"

	"medisearch/internal/common/logger"
	"medisearch/internal/common/notify"
	"medisearch/internal/common/observability"
	"medisearch/internal/engine/order"
	"medisearch/internal/engine/search"
	"medisearch/internal/orders"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	search   *search.Service
	builder  *order.Builder
	sink     orders.Sink
	notifier *notify.Notifier
	obs      *observability.Observability
	logger   logger.Logger
	router   *mux.Router
}

func NewServer(
	searchSvc *search.Service,
	builder *order.Builder,
	sink orders.Sink,
	notifier *notify.Notifier,
	obs *observability.Observability,
	log logger.Logger,
) *Server {
	s := &Server{
		search:   searchSvc,
		builder:  builder,
		sink:     sink,
		notifier: notifier,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "api"}),
		router:   mux.NewRouter(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	apiRouter := s.router.PathPrefix("/api").Subrouter()
	apiRouter.Use(s.instrument)
	apiRouter.HandleFunc("/search", s.handleSearch).Methods(http.MethodPost)
	apiRouter.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if s.obs != nil {
			route := r.URL.Path
			s.obs.RecordRequest(r.Context(), route, strconv.Itoa(rec.status))
			s.obs.RecordDuration(r.Context(), time.Since(started), route)
		}
	})
}

// statusRecorder captures the response status for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

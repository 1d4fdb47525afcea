// Package api exposes the budget tree and layout computations as a JSON API
// for a web frontend. Handlers are stateless: layout is recomputed per
// request from the in-memory tree, and the expand set arrives in the query
// string so the frontend owns all interaction state.
package api

import (
	"net/http"
	"time"

	"unbudget/internal/details"
	"unbudget/internal/model"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the unbudget HTTP API server.
type Server struct {
	router  chi.Router
	tree    *model.BudgetTree
	records []details.Record
	log     *log.Logger
}

// NewServer creates and configures the HTTP server around an already-built
// tree. records may be nil when the narrative dataset is unavailable; detail
// requests then report the retryable state.
func NewServer(tree *model.BudgetTree, records []details.Record, logger *log.Logger) *Server {
	s := &Server{
		tree:    tree,
		records: records,
		log:     logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Get("/api/tree", s.handleTree)
	r.Get("/api/treemap", s.handleTreemap)
	r.Get("/api/treemap/{part}", s.handleTreemapPart)
	r.Get("/api/lollipop", s.handleLollipop)
	r.Get("/api/ticks", s.handleTicks)
	r.Get("/api/details/{name}", s.handleDetails)

	s.router = r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"dur", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

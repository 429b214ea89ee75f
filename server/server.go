package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"airbnb-analytics/models"
	"airbnb-analytics/services"
	"airbnb-analytics/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Runner executes one analytics batch
type Runner interface {
	Run() (*services.RunReport, error)
}

// ResultReader returns the last stored results document
type ResultReader interface {
	ReadResults() ([]byte, error)
}

// ListingProvider returns the cleaned listings behind the browse API
type ListingProvider interface {
	Listings() ([]models.ListingRecord, error)
}

// RunResponse is returned by POST /api/analytics/run
type RunResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message,omitempty"`
	RunID   string                   `json:"run_id,omitempty"`
	Data    *models.AnalyticsResults `json:"data,omitempty"`
	Error   string                   `json:"error,omitempty"`
	Details string                   `json:"details,omitempty"`
}

// Server exposes the analytics results and cleaned listings over HTTP
type Server struct {
	router   chi.Router
	runner   Runner
	results  ResultReader
	listings ListingProvider
	limiter  *utils.RateLimiter
	logger   *utils.Logger
	running  sync.Mutex
}

// New creates the router. metricsHandler may be nil.
func New(runner Runner, results ResultReader, listings ListingProvider, limiter *utils.RateLimiter, metricsHandler http.Handler, logger *utils.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		runner:   runner,
		results:  results,
		listings: listings,
		limiter:  limiter,
		logger:   logger,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.health)
	if metricsHandler != nil {
		s.router.Handle("/metrics", metricsHandler)
	}
	s.router.Route("/api/analytics", func(r chi.Router) {
		r.Get("/", s.getAnalytics)
		r.Post("/run", s.runAnalytics)
	})
	s.router.Route("/api/listings", func(r chi.Router) {
		r.Get("/", s.getListings)
		r.Get("/filters", s.getListingFilters)
		r.Get("/map", s.getListingMap)
	})
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// getAnalytics handles GET /api/analytics
func (s *Server) getAnalytics(w http.ResponseWriter, r *http.Request) {
	data, err := s.results.ReadResults()
	if err != nil {
		s.logger.Error("Error reading analytics data: %v", err)
		s.loadFailed(w, r)
		return
	}
	if !json.Valid(data) {
		s.logger.Error("Analytics data is not valid JSON (%d bytes)", len(data))
		s.loadFailed(w, r)
		return
	}
	render.JSON(w, r, json.RawMessage(data))
}

func (s *Server) loadFailed(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, map[string]string{"error": "Failed to load analytics data"})
}

// runAnalytics handles POST /api/analytics/run
func (s *Server) runAnalytics(w http.ResponseWriter, r *http.Request) {
	if !s.running.TryLock() {
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, RunResponse{Success: false, Error: "Analytics run already in progress"})
		return
	}
	defer s.running.Unlock()

	if !s.limiter.Allow() {
		render.Status(r, http.StatusTooManyRequests)
		render.JSON(w, r, RunResponse{Success: false, Error: "Too many analytics runs, try again later"})
		return
	}

	report, err := s.runner.Run()
	if err != nil {
		s.logger.Error("Error running analytics: %v", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, RunResponse{
			Success: false,
			Error:   "Failed to run analytics",
			Details: err.Error(),
		})
		return
	}

	render.JSON(w, r, RunResponse{
		Success: true,
		Message: "Analytics updated successfully",
		RunID:   report.RunID,
		Data:    report.Results,
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("%s %s -> %d (%v) [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start),
			middleware.GetReqID(r.Context()))
	})
}

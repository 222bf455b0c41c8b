// Package chi exposes the search API over HTTP: the public search, detail,
// and suggest endpoints plus the authenticated invalidation hook for the
// mutation-producing collaborators.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/request"
	healthuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/health"
	searchuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/search"
	suggestuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/suggest"
	venueuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/venue"
)

// Error response codes.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeNotFound           = "not_found"
	codeStorageUnavailable = "storage_unavailable"
	codeInternalError      = "internal_error"
)

// searchParams are the query keys forwarded to the normalizer.
var searchParams = []string{
	"q", "district", "cuisine", "price_tier", "min_score",
	"sort_by", "page", "page_size", "lat", "lng",
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers for the search API.
type Server struct {
	search        *searchuc.Service
	venues        *venueuc.Service
	suggest       *suggestuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	venues *venueuc.Service,
	suggest *suggestuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		venues:  venues,
		suggest: suggest,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrStorage, http.StatusServiceUnavailable, codeStorageUnavailable),
	}
	return s
}

// Routes mounts all handlers. internalKeys guards the invalidation hook;
// an empty list disables it entirely rather than leaving it open.
func (s *Server) Routes(r chi.Router, internalKeys []string) {
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", s.Search)
		r.Get("/venues/{slug}", s.VenueDetail)
		r.Get("/suggest", s.Suggest)

		r.Route("/internal", func(r chi.Router) {
			r.Use(BearerAuthMiddleware(internalKeys))
			r.Post("/invalidations", s.Invalidate)
		})
	})
}

// Search handles GET /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	raw := make(map[string]string, len(searchParams))
	q := r.URL.Query()
	for _, key := range searchParams {
		if v := q.Get(key); v != "" {
			raw[key] = v
		}
	}

	req, err := request.New(raw)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, hit, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, resp)
}

// VenueDetail handles GET /api/v1/venues/{slug}.
func (s *Server) VenueDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	detail, hit, err := s.venues.Detail(r.Context(), slug)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, detail)
}

// Suggest handles GET /api/v1/suggest.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeFieldError(w, "limit", "must be an integer")
			return
		}
		limit = n
	}

	resp, hit, err := s.suggest.Suggest(r.Context(), q.Get("q"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, resp)
}

// invalidationRequest is the hook payload from the scraper or the scoring
// batch.
type invalidationRequest struct {
	Trigger string `json:"trigger"` // "venue" or "dish_scores"
	Slug    string `json:"slug"`
}

type invalidationResponse struct {
	Invalidated int `json:"invalidated"`
}

// Invalidate handles POST /api/v1/internal/invalidations.
func (s *Server) Invalidate(w http.ResponseWriter, r *http.Request) {
	var req invalidationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	var (
		n   int
		err error
	)
	switch req.Trigger {
	case "venue":
		n, err = s.venues.VenueChanged(r.Context(), req.Slug)
	case "dish_scores":
		n, err = s.venues.DishScoresRecomputed(r.Context(), req.Slug)
	default:
		writeFieldError(w, "trigger", "must be venue or dish_scores")
		return
	}
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.logger.Info("cache invalidated",
		zap.String("trigger", req.Trigger),
		zap.String("slug", req.Slug),
		zap.Int("evicted", n),
	)
	writeJSON(w, http.StatusOK, invalidationResponse{Invalidated: n})
}

// HealthCheck handles GET /healthz. A degraded cache still serves traffic,
// so only an unreachable database takes the endpoint out of rotation.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeFieldError(w http.ResponseWriter, field, reason string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    codeValidationFailed,
		Message: reason,
		Field:   field,
	})
}

// validationHandler maps field-level validation failures to 400 with the
// offending field named.
func validationHandler(w http.ResponseWriter, err error) bool {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	writeFieldError(w, verr.Field, verr.Reason)
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

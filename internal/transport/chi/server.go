// Package chi exposes the scoutdex HTTP API on a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	chimux "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	"github.com/kailas-cloud/scoutdex/internal/metrics"
	healthuc "github.com/kailas-cloud/scoutdex/internal/usecase/health"
)

// Error codes returned in the error response body.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeNotFound          = "not_found"
	codeStoreUnavailable  = "store_unavailable"
	codeSearchUnavailable = "search_unavailable"
	codeEmbeddingProvider = "embedding_provider_error"
	codeUnauthorized      = "unauthorized"
	codeInternalError     = "internal_error"
)

// ErrorResponse is the JSON body for every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusMapping maps a domain sentinel to an HTTP status and error code.
type statusMapping struct {
	sentinel error
	status   int
	code     string
}

// Server wires the entity facades into HTTP handlers.
type Server struct {
	companies companyService
	postings  postingService
	articles  articleService
	skills    skillService
	health    healthService
	logger    *zap.Logger

	defaultPageSize int
	maxPageSize     int

	mappings []statusMapping
}

// NewServer creates an HTTP API server.
func NewServer(
	companies companyService,
	postings postingService,
	articles articleService,
	skills skillService,
	health healthService,
	logger *zap.Logger,
	defaultPageSize, maxPageSize int,
) *Server {
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	return &Server{
		companies:       companies,
		postings:        postings,
		articles:        articles,
		skills:          skills,
		health:          health,
		logger:          logger,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		mappings: []statusMapping{
			{domain.ErrValidation, http.StatusUnprocessableEntity, codeValidationFailed},
			{domain.ErrNotFound, http.StatusNotFound, codeNotFound},
			{domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable},
			{domain.ErrSearchUnavailable, http.StatusServiceUnavailable, codeSearchUnavailable},
			{domain.ErrEmbeddingProvider, http.StatusBadGateway, codeEmbeddingProvider},
		},
	}
}

// Router builds the chi router with middleware and all routes mounted.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := chimux.NewRouter()
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(apiKeys))

	r.Get("/health", s.healthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chimux.Router) {
		r.Route("/companies", s.companyRoutes)
		r.Route("/postings", s.postingRoutes)
		r.Route("/articles", s.articleRoutes)
		r.Route("/skills", s.skillRoutes)
	})

	return r
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
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

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, m := range s.mappings {
		if errors.Is(err, m.sentinel) {
			s.logger.Warn("domain error", zap.Error(err))
			writeError(w, m.status, m.code, m.sentinel.Error())
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// decodeJSON reads a request body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// page reads offset/limit query parameters, clamping the limit.
func (s *Server) page(r *http.Request) (offset, limit int) {
	offset = queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	limit = queryInt(r, "limit", s.defaultPageSize)
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	return offset, limit
}

// searchLimit reads a body-provided limit, falling back to the default
// page size and clamping to the maximum.
func (s *Server) searchLimit(limit int) int {
	if limit <= 0 {
		return s.defaultPageSize
	}
	if limit > s.maxPageSize {
		return s.maxPageSize
	}
	return limit
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func queryCSV(r *http.Request, key string) []string {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func queryFloat(r *http.Request, key string) *float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func queryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}

func queryTime(r *http.Request, key string) *time.Time {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}

// idResponse is the body returned by create handlers.
type idResponse struct {
	ID string `json:"id"`
}

// scoredItem is one search or similarity result.
type scoredItem[T any] struct {
	Item  T       `json:"item"`
	Score float64 `json:"score"`
}

// listResponse is a paged listing with the unpaged total.
type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// searchResponse wraps scored results.
type searchResponse[T any] struct {
	Items []scoredItem[T] `json:"items"`
}

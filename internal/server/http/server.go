// Package httpserver provides the HTTP REST API server for the news service.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/newshub/news-api/internal/database"
	"github.com/newshub/news-api/internal/domain"
	"github.com/newshub/news-api/internal/observability"
	"github.com/newshub/news-api/internal/params"
	"github.com/newshub/news-api/internal/repository"
)

// Server is the HTTP REST API server.
type Server struct {
	router      chi.Router
	httpServer  *http.Server
	topicRepo   repository.TopicRepository
	articleRepo repository.ArticleRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	db          *database.DB
	logger      zerolog.Logger
	metrics     *observability.Metrics
	cfg         Config
}

// Config holds HTTP server configuration.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// DefaultArticleImgURL is substituted when a create-article payload omits
	// article_img_url.
	DefaultArticleImgURL string

	// DefaultLimit is the page size applied when a listing request omits limit.
	DefaultLimit int

	// MaxLimit caps the page size a caller may request.
	MaxLimit int

	// RateLimitRPS and RateLimitBurst configure the global request rate
	// limiter; the limiter is disabled when RateLimitRPS is zero.
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewServer creates a new HTTP server with all dependencies.
func NewServer(
	cfg Config,
	topicRepo repository.TopicRepository,
	articleRepo repository.ArticleRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	db *database.DB,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) *Server {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = params.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}

	s := &Server{
		topicRepo:   topicRepo,
		articleRepo: articleRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		db:          db,
		logger:      logger.With().Str("component", "http-server").Logger(),
		metrics:     metrics,
		cfg:         cfg,
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Router returns the underlying chi router, primarily for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(correlationIDMiddleware)
	r.Use(jsonContentTypeMiddleware)
	if s.metrics != nil {
		r.Use(s.metricsMiddleware)
	}
	if s.cfg.RateLimitRPS > 0 {
		r.Use(s.rateLimitMiddleware())
	}

	// Health endpoints
	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.readinessHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.getEndpoints)

		r.Get("/topics", s.listTopics)
		r.Post("/topics", s.createTopic)
		r.Delete("/topics/{slug}", s.deleteTopic)

		r.Get("/articles", s.listArticles)
		r.Post("/articles", s.createArticle)
		r.Get("/articles/{articleID}", s.getArticle)
		r.Patch("/articles/{articleID}", s.updateArticleVotes)
		r.Delete("/articles/{articleID}", s.deleteArticle)
		r.Get("/articles/{articleID}/comments", s.listArticleComments)
		r.Post("/articles/{articleID}/comments", s.createComment)

		r.Patch("/comments/{commentID}", s.updateCommentVotes)
		r.Delete("/comments/{commentID}", s.deleteComment)

		r.Get("/users", s.listUsers)
	})

	// Anything the router does not know is an invalid path, verb included.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Invalid path")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Invalid path")
	})

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := s.db.Health(r.Context())
	if health.Status == "healthy" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": health.Status})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{
		"status":   "unhealthy",
		"database": health.Status,
		"error":    health.Error,
	})
}

// readinessHandler reports whether the store is reachable.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	health := s.db.Health(r.Context())
	if health.Status != "healthy" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "not_ready",
			"database": health.Status,
			"error":    health.Error,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "healthy",
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort; headers already sent.
		_ = err
	}
}

// writeError writes the API's error envelope.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"msg": message})
}

// writeDomainError maps a domain error to its HTTP status and envelope.
// Referential violations render as "Invalid input" so callers can tell a bad
// payload reference apart from a missing resource. Anything unrecognized is a
// 500 with a generic message; the details go to the log only.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidReference):
		writeError(w, http.StatusNotFound, "Invalid input")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMessage(err))
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		if s.metrics != nil {
			s.metrics.StoreErrors.Inc()
		}
		logger := observability.WithRequestContext(
			s.logger, middleware.GetReqID(r.Context()), r.Method, r.URL.Path,
		)
		logger.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// notFoundMessage renders a NotFoundError without echoing internal detail.
func notFoundMessage(err error) string {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return fmt.Sprintf("%s not found", nf.Entity)
	}
	return "not found"
}

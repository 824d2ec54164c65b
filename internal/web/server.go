// Package web serves the catalog as HTML pages and a small read-only JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"templatehub/internal/catalog"
	"templatehub/internal/ratelimit"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	// PublicDir is served for paths no route matches, typically cover images.
	PublicDir string
	APIRate   float64
	APIBurst  int
	Logger    *slog.Logger
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store     *catalog.Store
	pages     *pageSet
	limiter   *ratelimit.KeyedRateLimiter
	publicDir string
	router    *chi.Mux
	logger    *slog.Logger
	startedAt time.Time
}

// NewServer creates a server with all routes configured.
func NewServer(store *catalog.Store, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pages, err := loadPages()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	rps, burst := opts.APIRate, opts.APIBurst
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = 20
	}

	s := &Server{
		store:     store,
		pages:     pages,
		limiter:   ratelimit.New(rps, burst),
		publicDir: opts.PublicDir,
		router:    chi.NewRouter(),
		logger:    logger,
		startedAt: time.Now(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources.
func (s *Server) Close() {
	s.limiter.Stop()
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Get("/", s.handleCatalog)
	s.router.Get("/templates", s.handleCatalog)
	s.router.Get("/templates/{slug}", s.handleDetail)
	s.router.Get("/about", s.handleAbout)
	s.router.Handle("/assets/*", http.StripPrefix("/assets/", assetHandler()))

	s.router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Use(s.limiter.Middleware(s.handleRateLimited))

		r.Get("/templates", s.handleAPIList)
		r.Get("/templates/{slug}", s.handleAPIDetail)
		r.Get("/tags", s.handleAPITags)
	})

	s.router.NotFound(s.handleFallback)
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelDebug
		if status >= 500 {
			level = slog.LevelError
		}
		s.logger.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
			"remote", r.RemoteAddr,
		)
	})
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "content", s.store.Root())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

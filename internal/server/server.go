// Package server implements the HTTP rendering API.
//
// The server exposes the same pipeline the CLI drives: POST /render turns
// an SBGN-ML document into PNG or SVG artifacts, POST /overview produces
// Graphviz connectivity summaries, and GET /healthz and GET /version
// support deployment probes. Responses are cached through the configured
// cache backend keyed by a hash of the request.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sbgnviz/sbgnviz/pkg/cache"
	"github.com/sbgnviz/sbgnviz/pkg/pipeline"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 2 * time.Minute
	shutdownTimeout = 10 * time.Second

	// maxBodyBytes caps uploaded documents. Pathway maps are text; even
	// genome-scale models stay well under this.
	maxBodyBytes = 32 << 20
)

// Config configures a Server. Zero-value fields get sensible defaults.
type Config struct {
	Addr   string
	Logger *log.Logger
	Runner *pipeline.Runner

	// Cache stores response envelopes keyed by request hash. Nil disables
	// response caching; the runner's artifact cache still applies.
	Cache cache.Cache
	Keyer cache.Keyer
}

// Server serves the rendering API.
type Server struct {
	addr   string
	logger *log.Logger
	runner *pipeline.Runner
	store  cache.Cache
	keyer  cache.Keyer
	router chi.Router
}

// New creates a Server with its routes registered.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cache.NewDefaultKeyer()
	}

	s := &Server{
		addr:   cfg.Addr,
		logger: cfg.Logger,
		runner: cfg.Runner,
		store:  cfg.Cache,
		keyer:  cfg.Keyer,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Post("/render", s.handleRender)
	r.Post("/overview", s.handleOverview)
	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	return r
}

// Handler returns the HTTP handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server and blocks until ctx is cancelled or the listener
// fails. Shutdown drains in-flight requests for up to shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

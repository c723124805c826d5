// Package server provides the preview HTTP server for rendered cookbook sites.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"hearthside/cookbook/pkg/index"
	"hearthside/cookbook/pkg/telemetry/metrics"
)

// Config contains configuration for the preview server.
type Config struct {
	// ListenAddress is the host:port to listen on
	ListenAddress string

	// SiteDir is the rendered site directory served at /
	SiteDir string

	// ReadTimeout is the maximum duration for reading a request
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration for writing a response
	WriteTimeout time.Duration

	// IdleTimeout is the maximum time to wait for the next request
	IdleTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the default preview server configuration.
// The server binds to loopback; previews are a local affair.
func DefaultConfig() *Config {
	return &Config{
		ListenAddress:   "127.0.0.1:8080",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Server serves a rendered site tree with health, metrics and search
// endpoints on the side. It reports not-ready until the first successful
// build is announced through SetReady.
type Server struct {
	config  *Config
	store   index.Store
	metrics *metrics.Collector
	logger  *slog.Logger

	httpServer   *http.Server
	shutdownChan chan struct{}
	stopOnce     sync.Once
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
	ready        atomic.Bool
}

// New creates a preview server. The store backs /api/search and may be
// nil to disable it; the collector backs /metrics and may be nil to
// disable it.
func New(config *Config, store index.Store, collector *metrics.Collector, logger *slog.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		config:       config,
		store:        store,
		metrics:      collector,
		logger:       logger.With("component", "server"),
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until the context is cancelled,
// Stop is called, or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddress,
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting preview server",
			"address", s.config.ListenAddress,
			"site_dir", s.config.SiteDir,
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		s.logger.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Stop asks a running server to shut down. It is safe to call more than
// once and before Start.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.shutdownChan)
	})
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.logger.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("preview server stopped")
	})

	return shutdownErr
}

// SetReady marks the server ready (or not). The serve command flips it
// after the first successful build; failed rebuilds leave it alone so the
// last good site keeps being served.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// IsReady reports whether a build has completed.
func (s *Server) IsReady() bool {
	return s.ready.Load()
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// setupRoutes configures the HTTP routes and middleware.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/", http.FileServer(http.Dir(s.config.SiteDir)))
	mux.Handle("/healthz", &healthHandler{ready: &s.ready})

	if s.store != nil {
		mux.Handle("/api/search", &searchHandler{store: s.store, logger: s.logger})
	}
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}

	var handler http.Handler = mux

	if s.metrics != nil {
		handler = s.metrics.Middleware(handler)
	}
	handler = s.logRequests(handler)

	return handler
}

// logRequests debug-logs every served request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

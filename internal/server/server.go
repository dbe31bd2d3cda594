// Package server implements the provgraph HTTP API.
//
// The API exposes the same pipeline the CLI uses: POST a PROV-JSON
// document to /v1/convert for PROV-JSONLD, or a PROV-JSONLD document to
// /v1/visualize for DOT (or a rendered image). When a record store is
// configured every handled conversion is persisted and can be listed
// back through /v1/records.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/provgraph/provgraph/pkg/observability"
	"github.com/provgraph/provgraph/pkg/pipeline"
	"github.com/provgraph/provgraph/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// maxBodyBytes caps request bodies. Provenance documents are text;
	// anything larger than this is almost certainly a mistake.
	maxBodyBytes = 10 << 20 // 10 MB

	// requestTimeout bounds one request end to end, rendering included.
	requestTimeout = 60 * time.Second

	// shutdownTimeout bounds the drain phase of a graceful shutdown.
	shutdownTimeout = 10 * time.Second
)

// =============================================================================
// Server
// =============================================================================

// Server wires the pipeline runner and the optional record store into
// an HTTP handler.
type Server struct {
	addr     string
	runner   *pipeline.Runner
	store    store.Store // nil disables the records endpoints
	logger   *log.Logger
	cacheTTL time.Duration // zero keeps the per-stage defaults
}

// New creates a server. A nil store disables conversion history; a nil
// logger falls back to the package default.
func New(addr string, runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		addr:   addr,
		runner: runner,
		store:  st,
		logger: logger,
	}
}

// SetCacheTTL overrides the cache entry lifetime applied to API
// requests. Zero keeps the per-stage defaults.
func (s *Server) SetCacheTTL(ttl time.Duration) {
	s.cacheTTL = ttl
}

// Router builds the chi handler tree with the standard middleware
// stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Post("/visualize", s.handleVisualize)
		r.Get("/records", s.handleRecords)
		r.Get("/records/{id}", s.handleRecord)
	})

	return r
}

// ListenAndServe runs the server until the context is cancelled, then
// drains in-flight requests before returning.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", s.addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Middleware
// =============================================================================

// requestLogger logs one line per request with the chi request id.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

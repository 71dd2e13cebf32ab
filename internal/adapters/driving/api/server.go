// Package api exposes the item bank over HTTP for frontend clients.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driving"
	"github.com/veritas-labs/itemforge-cli/internal/logger"
)

// TopK bounds enforced at the HTTP boundary.
const (
	DefaultTopK = 5
	MaxTopK     = 50
)

// Ports holds the driving services the API exposes.
type Ports struct {
	Item       driving.ItemService
	Review     driving.ReviewService
	Similarity driving.SimilarityService
	Generation driving.GenerationService
}

// Validate checks that the required services are present.
// Generation may be nil: those endpoints return 502 when unconfigured.
func (p Ports) Validate() error {
	if p.Item == nil {
		return errors.New("api: item service is required")
	}
	if p.Review == nil {
		return errors.New("api: review service is required")
	}
	if p.Similarity == nil {
		return errors.New("api: similarity service is required")
	}
	return nil
}

// Server is the HTTP server for the item bank API.
type Server struct {
	ports Ports
	http  *http.Server
}

// NewServer creates an API server listening on addr.
func NewServer(addr string, ports Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := &Server{ports: ports}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/items", s.handleCreateItem)
	mux.HandleFunc("GET /api/items", s.handleListItems)
	mux.HandleFunc("GET /api/items/{id}", s.handleGetItem)
	mux.HandleFunc("GET /api/items/{id}/similar", s.handleFindSimilar)
	mux.HandleFunc("POST /api/items/{id}/approve", s.handleApprove)
	mux.HandleFunc("POST /api/items/{id}/reject", s.handleReject)
	mux.HandleFunc("GET /api/cart", s.handleCart)
	mux.HandleFunc("POST /api/cart/commit", s.handleCommit)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           logRequests(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler returns the server's HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe runs the server until it fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	logger.Info("API server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// logRequests logs each request at debug level.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

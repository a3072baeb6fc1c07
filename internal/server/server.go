// Package server provides the HTTP REST API for the hiring agent.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/hiring-agent/internal/pipeline"
	"github.com/jonathan/hiring-agent/internal/semantic"
	"github.com/jonathan/hiring-agent/internal/server/middleware"
)

// Config holds server configuration
type Config struct {
	Port             int
	APIKey           string
	Threshold        float64
	RequiredLanguage string
	Workers          int
	SnapshotDir      string
	Embedder         semantic.Embedder
	Logger           *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	cfg        Config
	embedder   semantic.Embedder
	logger     *zap.Logger
	store      *pipeline.Store

	mu      sync.RWMutex
	results map[uuid.UUID]*pipeline.SessionResult
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = semantic.DefaultThreshold
	}
	if cfg.RequiredLanguage == "" {
		cfg.RequiredLanguage = "python"
	}

	s := &Server{
		cfg:      cfg,
		embedder: cfg.Embedder,
		logger:   cfg.Logger,
		store:    pipeline.NewStore(cfg.SnapshotDir),
		results:  make(map[uuid.UUID]*pipeline.SessionResult),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("GET /sessions/{id}/ranking-report", s.handleRankingReport)
	mux.HandleFunc("GET /sessions/{id}/xai-report", s.handleXAIReport)

	auth := middleware.APIKeyAuth(cfg.APIKey)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(auth(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // evaluation runs embed every resume
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler exposes the configured handler chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until interrupted.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/muthuishere/dual-crypt/internal/config"
	"github.com/muthuishere/dual-crypt/pkg/adapters/logger"
	"github.com/muthuishere/dual-crypt/pkg/crypto/asymmetric"
	"github.com/muthuishere/dual-crypt/pkg/crypto/symmetric"
	"github.com/muthuishere/dual-crypt/pkg/crypto/token"
	"github.com/muthuishere/dual-crypt/pkg/metrics"
)

// Server represents the REST API server.
type Server struct {
	server   *http.Server
	handlers *HandlerContext
	host     string
	port     int
	cors     *config.CORSConfig
	metrics  bool
	logger   logger.Logger
}

// Config holds the REST server configuration.
type Config struct {
	// Host is the interface to bind to (default: all interfaces)
	Host string

	// Port is the HTTP port to listen on (default: 8080)
	Port int

	// Version is the API version string
	Version string

	// CORS is the cross-origin policy (optional, defaults disable CORS)
	CORS *config.CORSConfig

	// TokenLifetime is the default validity window for signed tokens
	TokenLifetime time.Duration

	// MetricsEnabled exposes GET /metrics when true
	MetricsEnabled bool

	// Logger is the logging adapter (optional, uses slog if not provided)
	Logger logger.Logger

	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes
	WriteTimeout time.Duration

	// IdleTimeout is the maximum amount of time to wait for the next request
	IdleTimeout time.Duration
}

// NewServer creates a new REST API server.
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	// Set defaults
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 15 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}

	// Set up logger (default to slog if not provided)
	log := cfg.Logger
	if log == nil {
		log = logger.NewSlogAdapter(&logger.SlogConfig{
			Level: logger.LevelInfo,
		})
	}

	handlers := NewHandlerContext(
		cfg.Version,
		symmetric.NewCodec(nil),
		symmetric.NewFastCodec(nil),
		asymmetric.NewCodec(nil),
		token.NewCodec(&token.Config{Lifetime: cfg.TokenLifetime}),
	)

	if cfg.MetricsEnabled {
		metrics.Enable()
	} else {
		metrics.Disable()
	}

	server := &Server{
		handlers: handlers,
		host:     cfg.Host,
		port:     cfg.Port,
		cors:     cfg.CORS,
		metrics:  cfg.MetricsEnabled,
		logger:   log,
	}

	router := server.setupRouter()

	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return server, nil
}

// setupRouter configures the chi router with all routes and middleware.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(s.RecoveryMiddleware())
	r.Use(s.CorrelationMiddleware()) // Add correlation ID before logging
	r.Use(s.LoggingMiddleware())
	r.Use(metrics.HTTPMiddleware)
	r.Use(CORSMiddleware(s.cors))

	// Kubernetes-style health probes
	r.Get("/health/live", s.handlers.LivenessHandler)
	r.Get("/health/ready", s.handlers.ReadinessHandler)
	r.Get("/health/startup", s.handlers.StartupHandler)

	if s.metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handlers.HealthHandler)

		r.Route("/symmetric", func(r chi.Router) {
			r.Get("/generate", s.handlers.SymmetricGenerateHandler)
			r.Post("/encrypt", s.handlers.SymmetricEncryptHandler)
			r.Post("/decrypt", s.handlers.SymmetricDecryptHandler)
		})

		r.Route("/symmetric-fast", func(r chi.Router) {
			r.Get("/generate", s.handlers.FastGenerateHandler)
			r.Post("/encrypt", s.handlers.FastEncryptHandler)
			r.Post("/decrypt", s.handlers.FastDecryptHandler)
		})

		r.Route("/asymmetric", func(r chi.Router) {
			r.Get("/generate", s.handlers.AsymmetricGenerateHandler)
			r.Post("/encrypt", s.handlers.AsymmetricEncryptHandler)
			r.Post("/decrypt", s.handlers.AsymmetricDecryptHandler)
			r.Post("/sign", s.handlers.SignHandler)
			r.Post("/verify", s.handlers.VerifyHandler)
		})
	})

	return r
}

// Start starts the REST API server.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		logger.String("host", s.host),
		logger.Int("port", s.port))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the REST API server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shutdown server", logger.Error(err))
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server stopped")
	return nil
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// Handler returns the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// SetHealthChecker sets the health checker for the server.
func (s *Server) SetHealthChecker(checker HealthChecker) {
	s.handlers.SetHealthChecker(checker)
}

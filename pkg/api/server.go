package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/acolombo/taskdeck/internal/api/auth"
	"github.com/acolombo/taskdeck/internal/logger"
	"github.com/acolombo/taskdeck/pkg/store"
)

// devSecret is the development-only fallback signing secret. It is refused
// outside development so a misconfigured production deployment fails to
// start instead of issuing forgeable credentials.
const devSecret = "taskdeck-development-secret-do-not-use-in-production"

// Server provides the TaskDeck HTTP server.
//
// The server exposes health probes, authentication endpoints, and
// owner-scoped task APIs. It supports graceful shutdown with a timeout.
type Server struct {
	server       *http.Server
	codec        *auth.Codec
	store        store.Store
	config       APIConfig
	shutdownOnce sync.Once
}

// NewServer creates a new API HTTP server.
//
// The server is created in a stopped state. Call Start() to begin serving
// requests.
//
// The signing secret must be configured via config.JWT.Secret or the
// TASKDECK_SECRET environment variable. In development a baked-in secret is
// substituted when none is configured; in any other environment a missing
// secret is a startup error.
func NewServer(config APIConfig, development bool, s store.Store) (*Server, error) {
	config.applyDefaults()

	secret := config.GetJWTSecret()
	if secret == "" {
		if !development {
			return nil, fmt.Errorf("JWT secret is required; set it via the %s environment variable or config", EnvSecret)
		}
		logger.Warn("no JWT secret configured, using the development fallback",
			"env_var", EnvSecret)
		secret = devSecret
	}

	codec, err := auth.NewCodec(auth.CodecConfig{
		Secret:        secret,
		Issuer:        "taskdeck",
		TokenDuration: config.JWT.TokenDuration,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create credential codec: %w", err)
	}

	router := NewRouter(codec, s, prometheus.DefaultRegisterer)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		server: server,
		codec:  codec,
		store:  s,
		config: config,
	}, nil
}

// Codec returns the credential codec the server issues tokens with.
func (s *Server) Codec() *auth.Codec {
	return s.codec
}

// Start starts the API HTTP server and blocks until the context is cancelled
// or an error occurs. Cancellation triggers graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("API server listening", "port", s.config.Port)

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
				// Context was cancelled, error is not needed
			}
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("API server shutdown signal received")
		// Don't use the cancelled ctx as it would cause immediate shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("API server failed: %w", err)
	}
}

// Stop initiates graceful shutdown of the API server.
//
// Stop is safe to call multiple times and safe to call concurrently with Start().
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		logger.Debug("API server shutdown initiated")

		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("API server shutdown error: %w", err)
			logger.Error("API server shutdown error", "error", err)
		} else {
			logger.Info("API server stopped gracefully")
		}
	})
	return shutdownErr
}

// Port returns the TCP port the server is listening on.
func (s *Server) Port() int {
	return s.config.Port
}

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acolombo/taskdeck/internal/api/auth"
	"github.com/acolombo/taskdeck/internal/api/handlers"
	apiMiddleware "github.com/acolombo/taskdeck/internal/api/middleware"
	"github.com/acolombo/taskdeck/internal/logger"
	"github.com/acolombo/taskdeck/pkg/store"
)

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//   - The authentication gate, applied to everything except public paths
//
// Routes:
//   - GET /health - Liveness probe
//   - GET /ready - Readiness probe
//   - GET /metrics - Prometheus metrics
//   - POST /api/v1/auth/register - Account registration
//   - POST /api/v1/auth/login - Credential authentication
//   - GET /api/v1/me - Current account info
//   - /api/v1/users/{userID}/tasks/* - Task management (owner only)
func NewRouter(codec *auth.Codec, s store.Store, reg prometheus.Registerer) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// The gate runs before routing, so identity resolution and account
	// anchoring happen exactly once per request regardless of route shape.
	resolver := auth.NewResolver(codec, "userID")
	metrics := apiMiddleware.NewAuthMetrics(reg)
	public := apiMiddleware.NewPublicPaths(
		"/",
		"/health",
		"/ready",
		"/metrics",
		"/api/v1/auth/",
	)
	r.Use(apiMiddleware.Authenticator(resolver, s, public, metrics))

	healthHandler := handlers.NewHealthHandler(s)
	authHandler := handlers.NewAuthHandler(s, codec)
	taskHandler := handlers.NewTaskHandler(s)

	// Health routes - unauthenticated
	r.Get("/health", healthHandler.Liveness)
	r.Get("/ready", healthHandler.Readiness)

	// Prometheus metrics - unauthenticated
	if gatherer, ok := reg.(prometheus.Gatherer); ok {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes - public, the gate skips them
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Current account - any authenticated caller
		r.Get("/me", authHandler.Me)

		// Task routes - owner only
		r.Route("/users/{userID}/tasks", func(r chi.Router) {
			r.Use(apiMiddleware.RequireOwner("userID", metrics))

			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Get("/{taskID}", taskHandler.Get)
			r.Put("/{taskID}", taskHandler.Update)
			r.Delete("/{taskID}", taskHandler.Delete)
		})
	})

	return r
}

// isHealthPath returns whether the path is a health or metrics probe.
func isHealthPath(path string) bool {
	return path == "/health" || path == "/ready" || path == "/metrics"
}

// requestLogger logs requests using the internal logger and seeds the
// request-scoped LogContext. Downstream middleware fills in the resolution
// strategy and caller identity so the completion log carries them.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		lc := logger.NewLogContext(requestID, r.RemoteAddr, r.URL.Path)
		r = r.WithContext(logger.WithContext(r.Context(), lc))

		logger.DebugCtx(r.Context(), "API request started",
			"method", r.Method,
		)

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logArgs := []any{
			"method", r.Method,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		}

		// Log probe requests at DEBUG to avoid polluting logs in k8s
		if isHealthPath(r.URL.Path) {
			logger.DebugCtx(r.Context(), "API request completed", logArgs...)
		} else {
			logger.InfoCtx(r.Context(), "API request completed", logArgs...)
		}
	})
}

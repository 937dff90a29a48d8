package handlers

import (
	"net/http"

	"github.com/acolombo/taskdeck/internal/api/problem"
	"github.com/acolombo/taskdeck/internal/logger"
	"github.com/acolombo/taskdeck/pkg/store"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store store.Store
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// Liveness handles GET /health. It reports that the process is up without
// touching any dependency.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	problem.WriteJSONOK(w, map[string]string{"status": "ok"})
}

// Readiness handles GET /ready. It verifies the database connection so load
// balancers stop routing to an instance that cannot serve.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Healthcheck(r.Context()); err != nil {
		logger.WarnCtx(r.Context(), "readiness check failed", "error", err)
		problem.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
		})
		return
	}
	problem.WriteJSONOK(w, map[string]string{"status": "ready"})
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/acolombo/taskdeck/internal/api/auth"
	"github.com/acolombo/taskdeck/internal/api/problem"
	"github.com/acolombo/taskdeck/internal/logger"
	"github.com/acolombo/taskdeck/pkg/models"
	"github.com/acolombo/taskdeck/pkg/store"
)

// TaskHandler handles task API endpoints under /api/v1/users/{userID}/tasks.
// Every route is behind the ownership guard, so the caller in context is
// always the owner named in the path.
type TaskHandler struct {
	tasks store.TaskStore
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks store.TaskStore) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTaskRequest is the request body for POST .../tasks.
type CreateTaskRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
}

// UpdateTaskRequest is the request body for PUT .../tasks/{taskID}.
// Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status"`
}

// callerIdentity returns the authenticated caller. The gate guarantees one
// is present on every route this handler serves; a missing caller means a
// wiring mistake, answered with 401 rather than a panic.
func callerIdentity(w http.ResponseWriter, r *http.Request) (*auth.CallerContext, bool) {
	caller := auth.CallerFromContext(r.Context())
	if caller == nil {
		problem.Unauthenticated(w, "Authentication required")
		return nil, false
	}
	return caller, true
}

// List handles GET /api/v1/users/{userID}/tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context(), caller.Identity)
	if err != nil {
		logger.ErrorCtx(r.Context(), "task listing failed", "error", err)
		problem.InternalServerError(w, "Failed to list tasks")
		return
	}

	problem.WriteJSONOK(w, map[string]any{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// Create handles POST /api/v1/users/{userID}/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	task := &models.Task{
		OwnerID:     caller.Identity.String(),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if err := task.Validate(); err != nil {
		problem.UnprocessableEntity(w, err.Error())
		return
	}
	if task.Status == models.StatusCompleted {
		task.Complete(time.Now())
	}

	if _, err := h.tasks.CreateTask(r.Context(), task); err != nil {
		logger.ErrorCtx(r.Context(), "task creation failed", "error", err)
		problem.InternalServerError(w, "Failed to create task")
		return
	}

	problem.WriteJSONCreated(w, task)
}

// Get handles GET /api/v1/users/{userID}/tasks/{taskID}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(r.Context(), caller.Identity, chi.URLParam(r, "taskID"))
	if err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			problem.NotFound(w, "Task not found")
			return
		}
		logger.ErrorCtx(r.Context(), "task lookup failed", "error", err)
		problem.InternalServerError(w, "Failed to load task")
		return
	}

	problem.WriteJSONOK(w, task)
}

// Update handles PUT /api/v1/users/{userID}/tasks/{taskID}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	task, err := h.tasks.GetTask(r.Context(), caller.Identity, chi.URLParam(r, "taskID"))
	if err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			problem.NotFound(w, "Task not found")
			return
		}
		logger.ErrorCtx(r.Context(), "task lookup failed", "error", err)
		problem.InternalServerError(w, "Failed to load task")
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
		if task.Status == models.StatusCompleted {
			task.Complete(time.Now())
		} else {
			task.CompletedAt = nil
		}
	}
	if err := task.Validate(); err != nil {
		problem.UnprocessableEntity(w, err.Error())
		return
	}

	if err := h.tasks.UpdateTask(r.Context(), task); err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			problem.NotFound(w, "Task not found")
			return
		}
		logger.ErrorCtx(r.Context(), "task update failed", "error", err)
		problem.InternalServerError(w, "Failed to update task")
		return
	}

	problem.WriteJSONOK(w, task)
}

// Delete handles DELETE /api/v1/users/{userID}/tasks/{taskID}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), caller.Identity, chi.URLParam(r, "taskID")); err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			problem.NotFound(w, "Task not found")
			return
		}
		logger.ErrorCtx(r.Context(), "task deletion failed", "error", err)
		problem.InternalServerError(w, "Failed to delete task")
		return
	}

	problem.WriteNoContent(w)
}

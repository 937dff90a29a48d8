package models

import (
	"fmt"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	// StatusPending is a task that has not been started.
	StatusPending TaskStatus = "pending"
	// StatusInProgress is a task that is being worked on.
	StatusInProgress TaskStatus = "in_progress"
	// StatusCompleted is a finished task.
	StatusCompleted TaskStatus = "completed"
)

// IsValid checks if the status is a valid TaskStatus.
func (s TaskStatus) IsValid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// Task represents a single task owned by an account.
//
// OwnerID records the owning account's identity. Rows written by older
// deployments may carry non-canonical encodings, so ownership decisions
// must go through identity normalization rather than raw string equality.
type Task struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string     `gorm:"index;not null;size:36" json:"owner_id"`
	Title       string     `gorm:"not null;size:255" json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `gorm:"default:pending;size:50" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TableName returns the table name for Task.
func (Task) TableName() string {
	return "tasks"
}

// Complete marks the task completed and stamps the completion time.
func (t *Task) Complete(now time.Time) {
	t.Status = StatusCompleted
	t.CompletedAt = &now
}

// Validate checks if the task has valid configuration.
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if t.Status != "" && !t.Status.IsValid() {
		return fmt.Errorf("invalid task status: %s", t.Status)
	}
	return nil
}

// Package store provides the taskdeck persistence layer.
//
// This package implements the Store interface for managing accounts and
// tasks. Two backends are supported:
//   - SQLite (single-node, default)
//   - PostgreSQL (multi-instance capable)
package store

import (
	"context"

	"github.com/acolombo/taskdeck/pkg/identity"
	"github.com/acolombo/taskdeck/pkg/models"
)

// AccountStore is the account directory: it maps canonical identities to
// stored accounts and lazily provisions accounts on first sight of a valid
// identity.
//
// Thread Safety: implementations must be safe for concurrent use from
// multiple goroutines. Concurrent GetOrCreateAccount calls for the same
// identity must serialize through the database's transaction and uniqueness
// machinery, not an in-process lock, because multiple service instances may
// share one database.
type AccountStore interface {
	// GetAccount returns an account by canonical identity.
	// Returns models.ErrAccountNotFound if the account doesn't exist.
	GetAccount(ctx context.Context, id identity.ID) (*models.Account, error)

	// GetAccountByEmail returns an account by email.
	// Returns models.ErrAccountNotFound if no account has this email.
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetOrCreateAccount resolves an identity to an account, creating it if
	// the identity has never been seen (upsert-on-read).
	//
	// Lookup order: canonical identity first, then email. The email lookup
	// covers accounts created under a different identity encoding in the
	// past; when it hits, the stored ID is backfilled to the canonical form.
	// With an empty email no account is ever created; a miss returns
	// models.ErrAccountNotFound.
	//
	// Storage failures are reported as models.ErrDirectoryUnavailable.
	GetOrCreateAccount(ctx context.Context, id identity.ID, email, name string) (*models.Account, error)

	// ListAccounts returns all accounts.
	ListAccounts(ctx context.Context) ([]*models.Account, error)

	// CreateAccount creates a new account. The ID is generated if empty.
	// Returns the generated ID, or models.ErrDuplicateAccount if an account
	// with the same identity or email exists.
	CreateAccount(ctx context.Context, account *models.Account) (string, error)

	// DeleteAccount removes an account and all tasks it owns.
	// Returns models.ErrAccountNotFound if the account doesn't exist.
	DeleteAccount(ctx context.Context, id identity.ID) error

	// ValidateCredentials checks an email/password pair against the stored
	// bcrypt hash. Returns models.ErrInvalidCredentials on mismatch or
	// unknown email.
	ValidateCredentials(ctx context.Context, email, password string) (*models.Account, error)
}

// TaskStore manages task records.
type TaskStore interface {
	// GetTask returns a task by ID scoped to its owner.
	// Returns models.ErrTaskNotFound if no such task exists for the owner.
	GetTask(ctx context.Context, owner identity.ID, taskID string) (*models.Task, error)

	// ListTasks returns all tasks owned by the given identity.
	ListTasks(ctx context.Context, owner identity.ID) ([]*models.Task, error)

	// CreateTask creates a new task. The ID is generated if empty.
	CreateTask(ctx context.Context, task *models.Task) (string, error)

	// UpdateTask updates an existing task's mutable fields.
	// Returns models.ErrTaskNotFound if the task doesn't exist.
	UpdateTask(ctx context.Context, task *models.Task) error

	// DeleteTask deletes a task scoped to its owner.
	// Returns models.ErrTaskNotFound if no such task exists for the owner.
	DeleteTask(ctx context.Context, owner identity.ID, taskID string) error
}

// Store provides the full taskdeck persistence interface.
type Store interface {
	AccountStore
	TaskStore

	// Healthcheck verifies the database connection is alive.
	Healthcheck(ctx context.Context) error

	// Close releases the underlying database connection.
	Close() error
}

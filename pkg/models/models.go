// Package models defines the persisted types for taskdeck accounts and
// tasks, plus the domain errors shared across the store and API layers.
package models

// AllModels returns all GORM models for auto-migration.
func AllModels() []any {
	return []any{
		&Account{},
		&Task{},
	}
}

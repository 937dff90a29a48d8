package models

import (
	"fmt"
	"time"

	"github.com/acolombo/taskdeck/pkg/identity"
)

// Account represents a taskdeck user account.
//
// The primary key is the canonical identity (lower-case unhyphenated hex,
// see pkg/identity). Accounts created by older deployments may have been
// keyed under hyphenated or upper-case encodings; the store rewrites those
// to canonical form at migration time.
//
// Accounts are created either explicitly through registration or lazily the
// first time a valid credential for an unseen identity is resolved
// (upsert-on-read). Lazily created accounts have no password hash and can
// only authenticate via externally issued credentials.
type Account struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	DisplayName  string    `gorm:"size:255" json:"display_name,omitempty"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Account.
func (Account) TableName() string {
	return "accounts"
}

// Identity returns the account's canonical identity.
func (a *Account) Identity() identity.ID {
	return identity.ID(a.ID)
}

// GetDisplayName returns the display name, or the email if none is set.
func (a *Account) GetDisplayName() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Email
}

// Validate checks if the account has valid configuration.
func (a *Account) Validate() error {
	if _, err := identity.Normalize(a.ID); err != nil {
		return fmt.Errorf("invalid account id: %w", err)
	}
	if a.Email == "" {
		return fmt.Errorf("account email is required")
	}
	return nil
}

// Package auth provides credential issuance/verification, identity
// resolution, and ownership authorization for the taskdeck API.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT claims for taskdeck authentication.
//
// Historical clients of this API wrote the subject under three different
// claim names: the registered "sub" plus the legacy aliases "userId" and
// "user_id". Tokens are issued with all three populated so any consumer
// keeps working, and read back through the same priority order.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the legacy "userId" alias for the subject.
	UserID string `json:"userId,omitempty"`

	// AltUserID is the legacy "user_id" alias for the subject.
	AltUserID string `json:"user_id,omitempty"`

	// Email is the account email.
	Email string `json:"email,omitempty"`

	// Name is the account display name.
	Name string `json:"name,omitempty"`
}

// SubjectID returns the claimed subject, checking claim names in priority
// order: "sub" first, then the legacy aliases.
func (c *Claims) SubjectID() string {
	if c.Subject != "" {
		return c.Subject
	}
	if c.UserID != "" {
		return c.UserID
	}
	return c.AltUserID
}

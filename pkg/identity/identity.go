// Package identity defines the canonical textual form of a user identifier
// and the normalization rules that map every historical encoding onto it.
//
// Account IDs in taskdeck have been written in several encodings over time:
// hyphenated UUIDs, unhyphenated 32-hex strings, and mixed-case variants of
// either. All comparisons and storage keys use the canonical form produced
// here: lower-case, unhyphenated, 32 hex characters. It is storage-stable
// and collation-safe across SQLite and PostgreSQL.
package identity

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrMalformed is returned when an identifier is not a well-formed UUID
// under any accepted encoding. Malformed input is never coerced into a
// fabricated identity.
var ErrMalformed = errors.New("malformed identity")

// ID is a canonical user identifier: 32 lower-case hex characters.
type ID string

// Normalize canonicalizes a user identifier. It accepts hyphenated UUIDs,
// unhyphenated 32-hex strings, and mixed-case variants of either.
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) (ID, error) {
	u, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformed, raw)
	}
	return ID(hex.EncodeToString(u[:])), nil
}

// New generates a fresh identity in canonical form.
func New() ID {
	u := uuid.New()
	return ID(hex.EncodeToString(u[:]))
}

// Equal reports whether two raw identifiers denote the same logical user.
// It returns false if either side fails normalization.
func Equal(a, b string) bool {
	na, err := Normalize(a)
	if err != nil {
		return false
	}
	nb, err := Normalize(b)
	if err != nil {
		return false
	}
	return na == nb
}

// String returns the canonical form.
func (id ID) String() string {
	return string(id)
}

// Hyphenated returns the conventional 8-4-4-4-12 UUID rendering of the
// identity, for display and for interop with clients that expect it.
func (id ID) Hyphenated() string {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return string(id)
	}
	return u.String()
}

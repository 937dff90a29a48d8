package auth

import (
	"github.com/acolombo/taskdeck/pkg/identity"
)

// Decision is the outcome of an ownership check.
type Decision int

const (
	// Deny is the default decision.
	Deny Decision = iota
	// Allow is granted only on exact canonical identity match.
	Allow
)

// Authorize decides whether a caller may act on a resource with the given
// recorded owner. Both sides are normalized before comparison: resources may
// have been written under any historical identifier encoding, so raw string
// equality must never be used for ownership decisions.
//
// Deny is the default; either side failing normalization denies. There is
// no admin or superuser bypass.
func Authorize(caller, owner string) Decision {
	c, err := identity.Normalize(caller)
	if err != nil {
		return Deny
	}
	o, err := identity.Normalize(owner)
	if err != nil {
		return Deny
	}
	if c == o {
		return Allow
	}
	return Deny
}

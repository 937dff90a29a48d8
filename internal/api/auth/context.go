package auth

import (
	"context"

	"github.com/acolombo/taskdeck/pkg/identity"
)

// CallerContext is the request-scoped identity of a resolved caller. It is
// attached to the request context for the duration of handling and never
// persisted.
type CallerContext struct {
	// Identity is the caller's canonical identity.
	Identity identity.ID

	// Email is the caller's account email.
	Email string

	// Name is the caller's display name, if known.
	Name string

	// Strategy records which resolution strategy produced this identity.
	Strategy Strategy
}

// callerContextKey is a private type for context keys to avoid collisions.
type callerContextKey struct{}

// WithCaller returns a context carrying the resolved caller.
func WithCaller(ctx context.Context, caller *CallerContext) context.Context {
	return context.WithValue(ctx, callerContextKey{}, caller)
}

// CallerFromContext retrieves the resolved caller from the context, or nil
// if the request has not been resolved.
func CallerFromContext(ctx context.Context) *CallerContext {
	caller, _ := ctx.Value(callerContextKey{}).(*CallerContext)
	return caller
}

package logger

import (
	"context"
	"time"
)

// Standard field keys for structured logging. Use these keys consistently
// across all log statements for log aggregation and querying.
const (
	KeyRequestID = "request_id" // chi request ID for correlation
	KeyClientIP  = "client_ip"  // client IP address
	KeyPath      = "path"       // request path
	KeyStrategy  = "strategy"   // identity resolution strategy that succeeded
	KeyUserID    = "user_id"    // resolved canonical user identity
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

var logContextKey = contextKey{}

// LogContext holds request-scoped logging context.
type LogContext struct {
	RequestID string    // chi request ID
	ClientIP  string    // client IP address (without port)
	Path      string    // request path
	Strategy  string    // identity resolution strategy that succeeded
	UserID    string    // resolved canonical user identity
	StartTime time.Time // for duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext for a request from the given client.
func NewLogContext(requestID, clientIP, path string) *LogContext {
	return &LogContext{
		RequestID: requestID,
		ClientIP:  clientIP,
		Path:      path,
		StartTime: time.Now(),
	}
}

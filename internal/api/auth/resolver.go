package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/acolombo/taskdeck/internal/logger"
	"github.com/acolombo/taskdeck/pkg/identity"
)

// Strategy identifies one method of extracting a caller identity from a
// request.
type Strategy string

const (
	// StrategyContext reuses an identity already attached to the request by
	// an upstream gate in the same request lifecycle.
	StrategyContext Strategy = "context"

	// StrategyBearer decodes the Authorization bearer token.
	StrategyBearer Strategy = "bearer"

	// StrategyPath normalizes a user identifier embedded in the route path.
	// Fallback only; never the sole trust source for privileged operations.
	StrategyPath Strategy = "path"

	// StrategyNone means no strategy produced an identity.
	StrategyNone Strategy = "none"
)

// Resolution is the outcome of running the strategy chain over a request.
// An unresolved request is a value with Strategy == StrategyNone, not an
// error: the caller decides whether the target operation requires
// resolution.
type Resolution struct {
	Identity identity.ID
	Email    string
	Name     string
	Strategy Strategy
}

// Resolved reports whether any strategy produced an identity.
func (r Resolution) Resolved() bool {
	return r.Strategy != StrategyNone
}

// unresolved is the explicit "no identity" result.
var unresolved = Resolution{Strategy: StrategyNone}

// Resolver turns an inbound request into a caller identity by attempting an
// ordered sequence of strategies, short-circuiting on the first success.
//
// The ordering exists because real traffic carried tokens issued under
// inconsistent encodings and claim-naming schemes; a rigid decode-or-reject
// policy locked out legitimate users. Every fallback is explicit and the
// winning strategy is logged.
type Resolver struct {
	codec     *Codec
	pathParam string
}

// NewResolver creates a resolver using the given codec for bearer tokens.
// pathParam names the chi route parameter checked by the path strategy;
// empty means "userID".
func NewResolver(codec *Codec, pathParam string) *Resolver {
	if pathParam == "" {
		pathParam = "userID"
	}
	return &Resolver{codec: codec, pathParam: pathParam}
}

// Resolve runs the strategy chain. It never fails on ambiguity: when every
// strategy is exhausted it returns the explicit unresolved result.
//
// An expired bearer token is terminal for the bearer strategy (its claims
// are never trusted) but does not prevent the path strategy from running.
// The same holds for a token with an invalid signature.
func (r *Resolver) Resolve(req *http.Request) Resolution {
	ctx := req.Context()

	// Strategy 1: identity already attached by an upstream gate.
	if caller := CallerFromContext(ctx); caller != nil {
		return Resolution{
			Identity: caller.Identity,
			Email:    caller.Email,
			Name:     caller.Name,
			Strategy: StrategyContext,
		}
	}

	// Strategy 2: Authorization bearer token.
	if token, ok := extractBearerToken(req); ok {
		claims, err := r.codec.Decode(token)
		if err != nil {
			// Claims from expired or forged tokens are never trusted, but
			// later strategies may still identify the caller.
			logger.DebugCtx(ctx, "bearer token rejected",
				"error", err,
				logger.KeyPath, req.URL.Path,
			)
		} else {
			id, nerr := identity.Normalize(claims.SubjectID())
			if nerr != nil {
				logger.WarnCtx(ctx, "bearer token subject is not a valid identity",
					"subject", claims.SubjectID(),
					"error", nerr,
				)
			} else {
				logger.DebugCtx(ctx, "caller resolved",
					logger.KeyStrategy, string(StrategyBearer),
					logger.KeyUserID, id.String(),
				)
				return Resolution{
					Identity: id,
					Email:    claims.Email,
					Name:     claims.Name,
					Strategy: StrategyBearer,
				}
			}
		}
	}

	// Strategy 3: identifier embedded in the route path.
	if raw := r.pathIdentifier(req); raw != "" {
		id, err := identity.Normalize(raw)
		if err != nil {
			logger.DebugCtx(ctx, "path identifier rejected",
				"raw", raw,
				"error", err,
			)
		} else {
			logger.DebugCtx(ctx, "caller resolved",
				logger.KeyStrategy, string(StrategyPath),
				logger.KeyUserID, id.String(),
			)
			return Resolution{
				Identity: id,
				Strategy: StrategyPath,
			}
		}
	}

	return unresolved
}

// pathIdentifier extracts the user identifier segment from the request path.
// When the resolver runs inside a matched chi subrouter the route parameter
// is used directly. When it runs as an outer middleware, routing has not
// happened yet and the parameter is empty, so the raw path is scanned for
// the segment following "users".
func (r *Resolver) pathIdentifier(req *http.Request) string {
	if raw := chi.URLParam(req, r.pathParam); raw != "" {
		return raw
	}

	segments := strings.Split(strings.Trim(req.URL.Path, "/"), "/")
	for i, segment := range segments {
		if segment == "users" && i+1 < len(segments) {
			return segments[i+1]
		}
	}
	return ""
}

// extractBearerToken pulls the token out of the Authorization header.
// The scheme comparison is case-insensitive and the token may itself
// contain spaces.
func extractBearerToken(req *http.Request) (string, bool) {
	header := req.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	token := header[len(prefix):]
	if token == "" {
		return "", false
	}
	return token, true
}

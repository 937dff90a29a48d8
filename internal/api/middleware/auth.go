// Package middleware provides HTTP middleware for the TaskDeck API: the
// authentication gate, ownership checks, and request-scoped logging.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/acolombo/taskdeck/internal/api/auth"
	"github.com/acolombo/taskdeck/internal/api/problem"
	"github.com/acolombo/taskdeck/internal/logger"
	"github.com/acolombo/taskdeck/pkg/models"
	"github.com/acolombo/taskdeck/pkg/store"
)

// Gate outcome labels recorded against AuthMetrics.
const (
	outcomeAuthorized      = "authorized"
	outcomeUnauthenticated = "unauthenticated"
	outcomeForbidden       = "forbidden"
	outcomeUnavailable     = "unavailable"
)

// PublicPaths classifies request paths that bypass the authentication gate.
// A path is public when it matches an exact entry or starts with a prefix
// entry. The zero value admits nothing.
type PublicPaths struct {
	exact    map[string]struct{}
	prefixes []string
}

// NewPublicPaths builds a PublicPaths set. Entries ending in "/" are treated
// as prefixes; everything else must match exactly. The bare root "/" is an
// exact entry, not a match-everything prefix.
func NewPublicPaths(paths ...string) *PublicPaths {
	p := &PublicPaths{exact: make(map[string]struct{})}
	for _, path := range paths {
		if path != "/" && strings.HasSuffix(path, "/") {
			p.prefixes = append(p.prefixes, path)
			continue
		}
		p.exact[path] = struct{}{}
	}
	return p
}

// Contains reports whether the given request path is public.
func (p *PublicPaths) Contains(path string) bool {
	if p == nil {
		return false
	}
	if _, ok := p.exact[path]; ok {
		return true
	}
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Authenticator is the authentication gate. Public paths pass through
// untouched. For everything else it resolves the caller identity, anchors it
// to a directory account, and attaches the caller to the request context.
//
// Failure modes are deliberate:
//   - no strategy resolves an identity: 401, stable unauthenticated kind
//   - only the path strategy resolves an identity: 401, because a url
//     segment identifies a resource owner, it does not authenticate the
//     caller as that owner
//   - identity resolves but no matching account exists and the request
//     carries no email to provision one from: 401
//   - the account directory is unreachable: 503 with a retryable kind,
//     never a fabricated caller
func Authenticator(resolver *auth.Resolver, accounts store.AccountStore, public *PublicPaths, metrics *AuthMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public.Contains(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			res := resolver.Resolve(r)
			metrics.RecordResolution(string(res.Strategy))
			if !res.Resolved() {
				metrics.RecordOutcome(outcomeUnauthenticated)
				problem.Unauthenticated(w, "Authentication required")
				return
			}
			if res.Strategy == auth.StrategyPath {
				// A path-resolved identity names whose resources the
				// request is about; it is never proof of who sent it.
				metrics.RecordOutcome(outcomeUnauthenticated)
				problem.Unauthenticated(w, "Authentication required")
				return
			}

			account, err := accounts.GetOrCreateAccount(r.Context(), res.Identity, res.Email, res.Name)
			if err != nil {
				switch {
				case errors.Is(err, models.ErrAccountNotFound):
					// Credential carried no email claim to provision
					// from and no account matches the identity.
					metrics.RecordOutcome(outcomeUnauthenticated)
					problem.Unauthenticated(w, "Unknown account")
				case errors.Is(err, models.ErrDirectoryUnavailable):
					logger.ErrorCtx(r.Context(), "account directory unavailable", "error", err)
					metrics.RecordOutcome(outcomeUnavailable)
					problem.DirectoryUnavailable(w, "Account directory temporarily unavailable, retry later")
				default:
					logger.ErrorCtx(r.Context(), "account lookup failed", "error", err)
					metrics.RecordOutcome(outcomeUnavailable)
					problem.InternalServerError(w, "Account lookup failed")
				}
				return
			}

			caller := &auth.CallerContext{
				Identity: account.Identity(),
				Email:    account.Email,
				Name:     account.DisplayName,
				Strategy: res.Strategy,
			}

			if lc := logger.FromContext(r.Context()); lc != nil {
				lc.Strategy = string(res.Strategy)
				lc.UserID = caller.Identity.String()
			}
			logger.DebugCtx(r.Context(), "caller authenticated",
				logger.KeyStrategy, string(res.Strategy),
				logger.KeyUserID, caller.Identity.String())

			metrics.RecordOutcome(outcomeAuthorized)
			next.ServeHTTP(w, r.WithContext(auth.WithCaller(r.Context(), caller)))
		})
	}
}

// RequireOwner guards a route subtree whose path carries a resource owner
// identifier in the named route parameter. The authenticated caller must be
// the owner; both sides are normalized before comparison so encoding
// differences never grant or deny by accident. Denial is the default: any
// doubt is a 403. A caller the gate anchored from the path alone is
// refused outright, since comparing the path against itself proves
// nothing.
func RequireOwner(pathParam string, metrics *AuthMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := auth.CallerFromContext(r.Context())
			if caller == nil || caller.Strategy == auth.StrategyPath {
				metrics.RecordOutcome(outcomeUnauthenticated)
				problem.Unauthenticated(w, "Authentication required")
				return
			}

			owner := chi.URLParam(r, pathParam)
			if auth.Authorize(caller.Identity.String(), owner) != auth.Allow {
				logger.WarnCtx(r.Context(), "ownership check failed",
					logger.KeyUserID, caller.Identity.String(),
					"owner_param", owner)
				metrics.RecordOutcome(outcomeForbidden)
				problem.Forbidden(w, "You do not have access to this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

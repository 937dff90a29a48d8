package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/acolombo/taskdeck/pkg/identity"
)

func newRequestWithPathParam(method, target, param, value string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	rctx := chi.NewRouteContext()
	if param != "" {
		rctx.URLParams.Add(param, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name        string
		authHeader  string
		wantToken   string
		wantSuccess bool
	}{
		{"empty header", "", "", false},
		{"bearer token", "Bearer abc123", "abc123", true},
		{"bearer lowercase", "bearer abc123", "abc123", true},
		{"BEARER uppercase", "BEARER abc123", "abc123", true},
		{"missing token", "Bearer", "", false},
		{"wrong scheme", "Basic abc123", "", false},
		{"no space", "Bearerabc123", "", false},
		{"token with spaces", "Bearer token with spaces", "token with spaces", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			token, ok := extractBearerToken(req)
			if ok != tt.wantSuccess {
				t.Errorf("extractBearerToken() success = %v, want %v", ok, tt.wantSuccess)
			}
			if token != tt.wantToken {
				t.Errorf("extractBearerToken() token = %q, want %q", token, tt.wantToken)
			}
		})
	}
}

func TestResolver_PreAttachedContext(t *testing.T) {
	resolver := NewResolver(createTestCodec(t), "")

	caller := &CallerContext{
		Identity: identity.ID("add60fd1792f4ab99a53e2f859482c59"),
		Email:    "alice@example.com",
		Strategy: StrategyBearer,
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(WithCaller(req.Context(), caller))

	res := resolver.Resolve(req)
	if res.Strategy != StrategyContext {
		t.Fatalf("expected context strategy, got %s", res.Strategy)
	}
	if res.Identity != caller.Identity {
		t.Errorf("identity = %q, want %q", res.Identity, caller.Identity)
	}
}

func TestResolver_BearerToken(t *testing.T) {
	codec := createTestCodec(t)
	resolver := NewResolver(codec, "")

	subject := identity.ID("add60fd1792f4ab99a53e2f859482c59")
	token, err := codec.Issue(subject, "alice@example.com", "Alice", time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res := resolver.Resolve(req)
	if res.Strategy != StrategyBearer {
		t.Fatalf("expected bearer strategy, got %s", res.Strategy)
	}
	if res.Identity != subject {
		t.Errorf("identity = %q, want %q", res.Identity, subject)
	}
	if res.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", res.Email)
	}
}

func TestResolver_BearerNormalizesSubjectEncoding(t *testing.T) {
	codec := createTestCodec(t)
	resolver := NewResolver(codec, "")

	// A token whose subject uses the hyphenated encoding resolves to the
	// canonical form.
	claims := jwt.MapClaims{
		"sub":   "ADD60FD1-792F-4AB9-9A53-E2F859482C59",
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res := resolver.Resolve(req)
	if res.Strategy != StrategyBearer {
		t.Fatalf("expected bearer strategy, got %s", res.Strategy)
	}
	if res.Identity != identity.ID("add60fd1792f4ab99a53e2f859482c59") {
		t.Errorf("identity = %q, want canonical form", res.Identity)
	}
}

func TestResolver_ExpiredTokenFallsBackToPath(t *testing.T) {
	codec := createTestCodec(t)
	resolver := NewResolver(codec, "userID")

	expired := jwt.MapClaims{
		"sub":   "11111111222233334444555555555555",
		"email": "stale@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	req := newRequestWithPathParam(http.MethodGet, "/api/v1/users/add60fd1-792f-4ab9-9a53-e2f859482c59/tasks",
		"userID", "add60fd1-792f-4ab9-9a53-e2f859482c59")
	req.Header.Set("Authorization", "Bearer "+token)

	res := resolver.Resolve(req)
	if res.Strategy != StrategyPath {
		t.Fatalf("expected path strategy after expired token, got %s", res.Strategy)
	}
	// The expired token's subject must not leak into the resolution.
	if res.Identity != identity.ID("add60fd1792f4ab99a53e2f859482c59") {
		t.Errorf("identity = %q, want path-derived identity", res.Identity)
	}
	if res.Email != "" {
		t.Errorf("email = %q, want empty (expired claims are untrusted)", res.Email)
	}
}

func TestResolver_ForgedTokenClaimsNeverTrusted(t *testing.T) {
	codec := createTestCodec(t)
	resolver := NewResolver(codec, "userID")

	forged := jwt.MapClaims{
		"sub":   "11111111222233334444555555555555",
		"email": "attacker@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, forged).SignedString([]byte("wrong-secret-of-sufficient-length!!!"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	req := newRequestWithPathParam(http.MethodGet, "/", "userID", "")
	req.Header.Set("Authorization", "Bearer "+token)

	res := resolver.Resolve(req)
	if res.Resolved() {
		t.Fatalf("forged token resolved via %s", res.Strategy)
	}
}

func TestResolver_PathIdentifier(t *testing.T) {
	resolver := NewResolver(createTestCodec(t), "userID")

	t.Run("valid identifier", func(t *testing.T) {
		req := newRequestWithPathParam(http.MethodGet, "/api/v1/users/add60fd1792f4ab99a53e2f859482c59/tasks",
			"userID", "add60fd1792f4ab99a53e2f859482c59")
		res := resolver.Resolve(req)
		if res.Strategy != StrategyPath {
			t.Fatalf("expected path strategy, got %s", res.Strategy)
		}
	})

	t.Run("garbage identifier", func(t *testing.T) {
		req := newRequestWithPathParam(http.MethodGet, "/api/v1/users/bogus/tasks", "userID", "bogus")
		res := resolver.Resolve(req)
		if res.Resolved() {
			t.Fatalf("garbage path identifier resolved via %s", res.Strategy)
		}
	})

	t.Run("raw path scan before routing", func(t *testing.T) {
		// No chi route context: the resolver must find the segment after
		// "users" in the raw path.
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/users/add60fd1-792f-4ab9-9a53-e2f859482c59/tasks", nil)
		res := resolver.Resolve(req)
		if res.Strategy != StrategyPath {
			t.Fatalf("expected path strategy, got %s", res.Strategy)
		}
		if res.Identity.String() != "add60fd1792f4ab99a53e2f859482c59" {
			t.Errorf("identity = %s, want canonical form", res.Identity)
		}
	})

	t.Run("trailing users segment", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		res := resolver.Resolve(req)
		if res.Resolved() {
			t.Fatalf("bare users path resolved via %s", res.Strategy)
		}
	})
}

func TestResolver_Unresolved(t *testing.T) {
	resolver := NewResolver(createTestCodec(t), "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	res := resolver.Resolve(req)

	if res.Resolved() {
		t.Fatalf("expected unresolved, got strategy %s", res.Strategy)
	}
	if res.Strategy != StrategyNone {
		t.Errorf("strategy = %s, want %s", res.Strategy, StrategyNone)
	}
}

func TestCallerContext_RoundTrip(t *testing.T) {
	caller := &CallerContext{
		Identity: identity.New(),
		Email:    "alice@example.com",
		Strategy: StrategyBearer,
	}
	ctx := WithCaller(context.Background(), caller)

	got := CallerFromContext(ctx)
	if got == nil || got.Identity != caller.Identity {
		t.Fatalf("CallerFromContext = %+v, want %+v", got, caller)
	}

	if CallerFromContext(context.Background()) != nil {
		t.Error("expected nil caller for empty context")
	}
}

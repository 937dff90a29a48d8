package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/acolombo/taskdeck/pkg/identity"
)

// Decode errors. Every decode failure maps onto exactly one of these so the
// resolver can decide what a failure means for the rest of its strategy
// chain.
var (
	ErrTokenMalformed      = errors.New("token is malformed")
	ErrSignatureInvalid    = errors.New("token signature is invalid")
	ErrTokenExpired        = errors.New("token has expired")
	ErrMissingClaim        = errors.New("token is missing a required claim")
	ErrTokenSigningFailed  = errors.New("failed to sign token")
	ErrInvalidSecretLength = errors.New("signing secret must be at least 32 characters")
)

// CodecConfig holds configuration for credential issuance and verification.
type CodecConfig struct {
	// Secret is the HMAC signing key. Must be at least 32 characters.
	Secret string

	// Issuer is the token issuer claim. Default: "taskdeck"
	Issuer string

	// TokenDuration is the default credential lifetime. Default: 24 hours,
	// matching what earlier deployments issued.
	TokenDuration time.Duration
}

// Codec issues and verifies signed, time-limited credentials.
//
// Only HMAC-SHA256 is accepted: a token whose header advertises any other
// algorithm fails verification regardless of its signature.
type Codec struct {
	config CodecConfig
}

// NewCodec creates a credential codec with the given configuration.
func NewCodec(config CodecConfig) (*Codec, error) {
	if len(config.Secret) < 32 {
		return nil, ErrInvalidSecretLength
	}

	if config.Issuer == "" {
		config.Issuer = "taskdeck"
	}
	if config.TokenDuration == 0 {
		config.TokenDuration = 24 * time.Hour
	}

	return &Codec{config: config}, nil
}

// TokenDuration returns the configured default credential lifetime.
func (c *Codec) TokenDuration() time.Duration {
	return c.config.TokenDuration
}

// Issue builds a signed credential for the given subject. The subject is
// written under "sub" and both legacy aliases. A non-positive ttl uses the
// configured default.
func (c *Codec) Issue(subject identity.ID, email, name string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = c.config.TokenDuration
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.config.Issuer,
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    subject.String(),
		AltUserID: subject.String(),
		Email:     email,
		Name:      name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.config.Secret))
	if err != nil {
		return "", ErrTokenSigningFailed
	}

	return signed, nil
}

// Decode verifies a credential's signature, algorithm, and expiry, and
// returns its claims. The subject and email must be present (under any of
// their accepted claim names).
//
// Decode is pure over the secret and input; failures are always recoverable
// by the caller.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		// Never trust an attacker-supplied algorithm field.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(c.config.Secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			// Keyfunc rejection (wrong algorithm) lands here.
			return nil, ErrSignatureInvalid
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.SubjectID() == "" {
		return nil, fmt.Errorf("%w: subject", ErrMissingClaim)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: email", ErrMissingClaim)
	}

	return claims, nil
}

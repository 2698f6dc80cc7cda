package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an issued token.
const DefaultTokenTTL = 30 * time.Minute

// minSecretLen is the minimum signing secret length in bytes. HS256 wants
// at least 256 bits of key material.
const minSecretLen = 32

// Claims is the payload embedded in every issued token. The role is carried
// under the bare "Role" key without the ROLE_ prefix; the prefix is added
// back when the authority set is derived.
type Claims struct {
	Role string `json:"Role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed tokens. Tokens are
// self-contained and never stored server-side, so verification needs no
// database round-trip. The service holds no mutable state and is safe for
// concurrent use.
type TokenService struct {
	key    []byte
	ttl    time.Duration
	parser *jwt.Parser

	// now is swapped out in tests to simulate clock advance.
	now func() time.Time
}

// NewTokenService creates a token service signing with the given secret.
// The secret's raw text bytes are used as key material (not hex/base64
// decoded) so tokens stay compatible with previously issued ones. A missing
// or short secret is a startup error; there is no per-call error path for
// key misconfiguration.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("signing secret must be at least %d bytes, got %d", minSecretLen, len(secret))
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		key: []byte(secret),
		ttl: ttl,
		// Expiry is checked separately via IsExpired, so claims
		// validation stays off here: Verify answers only "is this
		// token authentic and well-formed".
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
		now: time.Now,
	}, nil
}

// Issue builds and signs a token for the given subject and bare role name.
func (s *TokenService) Issue(subject, role string) (string, error) {
	now := s.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify recomputes the signature over the token's header and payload and
// returns the embedded claims. It rejects tampered or structurally corrupt
// tokens but deliberately does NOT reject expired ones; expiry is a separate
// explicit check so callers decide what an expired-but-authentic token means.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidSignature
	}
	return claims, nil
}

// IsExpired reports whether the verified token's exp claim is strictly
// before now. The error is non-nil when the token fails verification or
// carries no expiry.
func (s *TokenService) IsExpired(tokenString string) (bool, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return false, err
	}
	if claims.ExpiresAt == nil {
		return false, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}
	return claims.ExpiresAt.Time.Before(s.now()), nil
}

// ExtractSubject returns the sub claim. The signature is re-verified from
// the raw bytes on every call; claims are never trusted unverified.
func (s *TokenService) ExtractSubject(tokenString string) (string, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractRole returns the bare role name claim, re-verifying the signature.
func (s *TokenService) ExtractRole(tokenString string) (string, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Principal is the credential store's view of an account that can sign in.
type Principal struct {
	Username     string
	PasswordHash string
	Role         string // full role name, ROLE_ prefix included
	Active       bool
}

// CredentialStore looks up stored credentials by username. Implementations
// return an error when no active principal exists for the username.
type CredentialStore interface {
	FindActiveByUsername(ctx context.Context, username string) (*Principal, error)
}

// Authenticator implements the login flow: credential validation followed by
// token issuance.
type Authenticator struct {
	store  CredentialStore
	hasher SecretHasher
	tokens *TokenService
	logger *zap.Logger
}

// NewAuthenticator wires the login flow dependencies.
func NewAuthenticator(store CredentialStore, hasher SecretHasher, tokens *TokenService, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Authenticate validates the credential pair and returns a signed token.
// Unknown username, wrong password and deactivated account all surface as
// the same ErrInvalidCredentials so callers cannot enumerate accounts.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (string, error) {
	principal, err := a.store.FindActiveByUsername(ctx, username)
	if err != nil {
		a.logger.Debug("login rejected: principal lookup failed",
			zap.String("username", username))
		return "", ErrInvalidCredentials
	}

	if !a.hasher.Verify(password, principal.PasswordHash) {
		a.logger.Debug("login rejected: secret mismatch",
			zap.String("username", username))
		return "", ErrInvalidCredentials
	}

	if !principal.Active {
		a.logger.Debug("login rejected: principal inactive",
			zap.String("username", username))
		return "", ErrInvalidCredentials
	}

	// The token carries the bare role name; the ROLE_ prefix is restored
	// when authorities are derived.
	bareRole := strings.TrimPrefix(principal.Role, RolePrefix)

	token, err := a.tokens.Issue(principal.Username, bareRole)
	if err != nil {
		return "", err
	}

	a.logger.Info("principal authenticated",
		zap.String("username", principal.Username),
		zap.String("role", principal.Role))
	return token, nil
}

package services

import (
	"context"

	"github.com/barberops/backend/auth"
	"github.com/barberops/backend/repositories"
)

// RepositoryCredentialStore adapts the user repository to the credential
// store the authenticator reads from.
type RepositoryCredentialStore struct {
	users repositories.UserRepository
}

// NewRepositoryCredentialStore creates a credential store backed by the
// user repository
func NewRepositoryCredentialStore(users repositories.UserRepository) *RepositoryCredentialStore {
	return &RepositoryCredentialStore{users: users}
}

// FindActiveByUsername looks up an active account by username
func (s *RepositoryCredentialStore) FindActiveByUsername(ctx context.Context, username string) (*auth.Principal, error) {
	user, err := s.users.FindActiveByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return &auth.Principal{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Active:       user.IsActive,
	}, nil
}

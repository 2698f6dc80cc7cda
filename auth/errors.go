package auth

import "errors"

// Sentinel errors for the authentication core. Callers match with errors.Is.
var (
	// ErrInvalidCredentials is returned for every login failure mode:
	// unknown username, wrong password, or deactivated account. The modes
	// are deliberately indistinguishable to prevent user enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidSignature means the token signature does not match the
	// signing key (tampered or signed with a different key).
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrMalformedToken means the token is structurally corrupt.
	ErrMalformedToken = errors.New("malformed token")

	// ErrUnknownRole means a token references a role absent from the
	// registry. This indicates role-data drift between token issuance and
	// registry configuration and must be logged loudly, never swallowed.
	ErrUnknownRole = errors.New("unknown role")
)

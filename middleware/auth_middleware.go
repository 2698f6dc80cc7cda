package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/barberops/backend/auth"
	"github.com/barberops/backend/utils"
	"go.uber.org/zap"
)

// bearerPrefix is the expected Authorization header prefix, space included.
const bearerPrefix = "Bearer "

// AuthMiddleware turns a bearer token into a request-scoped identity. It
// runs once per request on the request's own goroutine and shares no mutable
// state across requests: the token service and registry are read-only.
type AuthMiddleware struct {
	tokens   *auth.TokenService
	registry *auth.Registry
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(tokens *auth.TokenService, registry *auth.Registry, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		registry: registry,
		logger:   logger,
	}
}

// PopulateIdentity extracts the bearer token, verifies it and publishes the
// authenticated identity into the request context. It only populates
// identity: the request always continues, authenticated or not, and access
// denial is left to downstream authorization (RequireAuthority). Invalid,
// malformed and expired tokens all degrade silently to "no identity".
func (m *AuthMiddleware) PopulateIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		token := extractBearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		// First wins: a second valid token on an already-authenticated
		// request is ignored, which also guards against the middleware
		// running twice.
		if GetIdentityFromContext(ctx) != nil {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			m.logger.Debug("token verification failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		expired, err := m.tokens.IsExpired(token)
		if err != nil || expired {
			m.logger.Debug("token expired",
				zap.String("request_id", requestID),
				zap.String("sub", claims.Subject))
			next.ServeHTTP(w, r)
			return
		}

		authorities, err := m.registry.AuthoritiesFor(claims.Role)
		if err != nil {
			if errors.Is(err, auth.ErrUnknownRole) {
				// Role-data drift between issuance and registry
				// configuration. Loud on purpose.
				m.logger.Error("token references role missing from registry",
					zap.String("request_id", requestID),
					zap.String("sub", claims.Subject),
					zap.String("role", claims.Role),
					zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx = WithIdentity(ctx, &Identity{
			Subject:     claims.Subject,
			Authorities: authorities,
		})

		m.logger.Debug("identity established",
			zap.String("request_id", requestID),
			zap.String("sub", claims.Subject),
			zap.String("role", claims.Role))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuthenticated rejects requests that carry no identity. This is the
// downstream authorization decision, separate from identity population.
func (m *AuthMiddleware) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetIdentityFromContext(r.Context()) == nil {
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuthority requires the identity to carry the named authority
// (a prefixed role name or a permission).
func (m *AuthMiddleware) RequireAuthority(authority string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			identity := GetIdentityFromContext(ctx)
			if identity == nil {
				_ = utils.WriteUnauthorized(w, "Authentication required")
				return
			}

			if !identity.HasAuthority(authority) {
				m.logger.Warn("insufficient permissions",
					zap.String("request_id", requestID),
					zap.String("sub", identity.Subject),
					zap.String("required_authority", authority))
				_ = utils.WriteForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractBearerToken returns the token following the 7-character "Bearer "
// prefix of the Authorization header, or "" when absent.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(authHeader[len(bearerPrefix):])
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/barberops/backend/auth"
	"github.com/barberops/backend/middleware"
	"github.com/barberops/backend/utils"
	"go.uber.org/zap"
)

// SignInRequest is the credential pair presented at sign-in.
type SignInRequest struct {
	Username string `json:"username" validate:"required,min=3,max=60"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse carries the issued token.
type SignInResponse struct {
	Token string `json:"token"`
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authenticator *auth.Authenticator
	logger        *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authenticator *auth.Authenticator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		logger:        logger,
	}
}

// HandleSignIn handles POST /auth/signin. Every credential failure returns
// the same generic 401 body.
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse sign-in body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	token, err := h.authenticator.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.Info("sign-in rejected",
			zap.String("request_id", requestID),
			zap.String("username", req.Username))
		_ = utils.WriteUnauthorized(w, "Invalid username or password")
		return
	}

	h.logger.Info("sign-in succeeded",
		zap.String("request_id", requestID),
		zap.String("username", req.Username))

	_ = utils.WriteOK(w, SignInResponse{Token: token})
}

// CurrentUserResponse is the response body for GET /api/v1/users/me
type CurrentUserResponse struct {
	Subject     string   `json:"subject"`
	Authorities []string `json:"authorities"`
}

// HandleMe handles GET /api/v1/users/me. It reflects the identity the token
// resolved to, authorities included.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}
	_ = utils.WriteOK(w, CurrentUserResponse{
		Subject:     identity.Subject,
		Authorities: identity.Authorities,
	})
}

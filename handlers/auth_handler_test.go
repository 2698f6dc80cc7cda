package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/barberops/backend/auth"
	"github.com/barberops/backend/middleware"
	"github.com/barberops/backend/utils"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// staticCredentialStore serves a fixed principal set for handler tests.
type staticCredentialStore struct {
	principals map[string]*auth.Principal
}

func (s *staticCredentialStore) FindActiveByUsername(_ context.Context, username string) (*auth.Principal, error) {
	p, ok := s.principals[username]
	if !ok {
		return nil, errors.New("principal not found")
	}
	return p, nil
}

func newTestAuthHandler(t *testing.T) (*AuthHandler, *auth.TokenService) {
	t.Helper()

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correct-password")
	require.NoError(t, err)

	store := &staticCredentialStore{principals: map[string]*auth.Principal{
		"owner": {Username: "owner", PasswordHash: hash, Role: "ROLE_ADMIN", Active: true},
	}}

	tokens, err := auth.NewTokenService(testSecret, 30*time.Minute)
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	authenticator := auth.NewAuthenticator(store, hasher, tokens, logger)
	return NewAuthHandler(authenticator, logger), tokens
}

func signInRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/auth/signin", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandler_HandleSignIn(t *testing.T) {
	t.Run("valid credentials return a token", func(t *testing.T) {
		h, tokens := newTestAuthHandler(t)

		rec := httptest.NewRecorder()
		h.HandleSignIn(rec, signInRequest(t, SignInRequest{Username: "owner", Password: "correct-password"}))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp utils.SuccessResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		data := resp.Data.(map[string]interface{})
		token := data["token"].(string)
		require.NotEmpty(t, token)

		sub, err := tokens.ExtractSubject(token)
		require.NoError(t, err)
		assert.Equal(t, "owner", sub)
	})

	t.Run("wrong password and unknown user get identical 401 bodies", func(t *testing.T) {
		h, _ := newTestAuthHandler(t)

		wrongRec := httptest.NewRecorder()
		h.HandleSignIn(wrongRec, signInRequest(t, SignInRequest{Username: "owner", Password: "wrong"}))

		ghostRec := httptest.NewRecorder()
		h.HandleSignIn(ghostRec, signInRequest(t, SignInRequest{Username: "ghost", Password: "wrong"}))

		assert.Equal(t, http.StatusUnauthorized, wrongRec.Code)
		assert.Equal(t, http.StatusUnauthorized, ghostRec.Code)
		assert.Equal(t, wrongRec.Body.String(), ghostRec.Body.String())
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		h, _ := newTestAuthHandler(t)

		req := httptest.NewRequest("POST", "/auth/signin", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		h.HandleSignIn(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		h, _ := newTestAuthHandler(t)

		rec := httptest.NewRecorder()
		h.HandleSignIn(rec, signInRequest(t, SignInRequest{Username: "ab"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp utils.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Details)
	})
}

func TestAuthHandler_HandleMe(t *testing.T) {
	t.Run("reflects the request identity", func(t *testing.T) {
		h, _ := newTestAuthHandler(t)

		req := httptest.NewRequest("GET", "/auth/me", nil)
		id := &middleware.Identity{
			Subject:     "owner",
			Authorities: []string{"ROLE_ADMIN", auth.PermProductAdd},
		}
		req = req.WithContext(middleware.WithIdentity(req.Context(), id))
		rec := httptest.NewRecorder()

		h.HandleMe(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp utils.SuccessResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "owner", data["subject"])
		assert.Contains(t, data["authorities"], "ROLE_ADMIN")
	})

	t.Run("anonymous request gets 401", func(t *testing.T) {
		h, _ := newTestAuthHandler(t)

		rec := httptest.NewRecorder()
		h.HandleMe(rec, httptest.NewRequest("GET", "/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Priyan1011/remote-interview-platform/internal/handlers"
	"github.com/Priyan1011/remote-interview-platform/internal/models"
	"github.com/Priyan1011/remote-interview-platform/internal/repositories"
	"github.com/Priyan1011/remote-interview-platform/internal/testhelpers"
)

func newAuthHandler(t *testing.T) *handlers.AuthHandler {
	t.Helper()
	repo := &repositories.UserRepository{DB: testhelpers.SetupTestDB(t)}
	return &handlers.AuthHandler{Repo: repo, JWTSecret: "test-secret"}
}

func register(t *testing.T, h *handlers.AuthHandler, username, email, password string) {
	t.Helper()
	rr := doJSON(t, http.HandlerFunc(h.Register), http.MethodPost, "/api/v1/auth/register", map[string]any{
		"username": username, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	h := newAuthHandler(t)
	register(t, h, "alice", "alice@example.com", "s3cret")

	rr := doJSON(t, http.HandlerFunc(h.Login), http.MethodPost, "/api/v1/auth/login", map[string]any{
		"username": "alice", "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, models.RoleCandidate, resp.User.Role, "role defaults to candidate")
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	h := newAuthHandler(t)
	register(t, h, "alice", "alice@example.com", "pw")

	rr := doJSON(t, http.HandlerFunc(h.Register), http.MethodPost, "/api/v1/auth/register", map[string]any{
		"username": "alice", "email": "other@example.com", "password": "pw",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	h := newAuthHandler(t)

	rr := doJSON(t, http.HandlerFunc(h.Register), http.MethodPost, "/api/v1/auth/register", map[string]any{
		"username": "bob", "email": "bob@example.com", "password": "pw", "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	h := newAuthHandler(t)
	register(t, h, "alice", "alice@example.com", "correct")

	rr := doJSON(t, http.HandlerFunc(h.Login), http.MethodPost, "/api/v1/auth/login", map[string]any{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	h := newAuthHandler(t)

	rr := doJSON(t, http.HandlerFunc(h.Login), http.MethodPost, "/api/v1/auth/login", map[string]any{
		"username": "ghost", "password": "pw",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMeRoundTrip(t *testing.T) {
	h := newAuthHandler(t)
	register(t, h, "alice", "alice@example.com", "pw")

	rr := doJSON(t, http.HandlerFunc(h.Login), http.MethodPost, "/api/v1/auth/login", map[string]any{
		"username": "alice", "password": "pw",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	req := doJSONRequest(t, http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec := serve(http.HandlerFunc(h.Me), req)
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "alice", user.Username)
}

func TestMeWithoutTokenIs401(t *testing.T) {
	h := newAuthHandler(t)

	req := doJSONRequest(t, http.MethodGet, "/api/v1/auth/me", nil)
	rec := serve(http.HandlerFunc(h.Me), req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

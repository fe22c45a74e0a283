package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkigram/backend/internal/models"
)

func TestRegisterAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", models.RegisterRequest{
		Username: "alice",
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		City:     "Hamburg",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeJSON[models.UserCompact](t, rec)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "alice", created.Username)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{
		Username: "alice",
		Password: "password123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeJSON[struct {
		Token string             `json:"token"`
		User  models.UserCompact `json:"user"`
	}](t, rec)
	require.NotEmpty(t, payload.Token)
	assert.Equal(t, created.ID, payload.User.ID)

	// The issued token resolves back to the registered user.
	userID, err := env.tokens.Verify(payload.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)

	// Login sets the session cookie.
	cookies := rec.Result().Cookies()
	var found bool
	for _, ck := range cookies {
		if ck.Name == "token" && ck.Value == payload.Token {
			found = true
			assert.True(t, ck.HttpOnly)
		}
	}
	assert.True(t, found, "login should set the token cookie")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "password123")

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", models.RegisterRequest{
		Username: "alice",
		Name:     "Another Alice",
		Email:    "other@example.com",
		Password: "password123",
		City:     "Munich",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "password123")

	unknown := env.do(t, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{
		Username: "nobody",
		Password: "password123",
	}, "")
	wrongPw := env.do(t, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, unknown.Body.String(), wrongPw.Body.String())
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/logout", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "token" && ck.Value == "" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout should clear the token cookie")

	// Idempotent: a second logout behaves the same.
	rec = env.do(t, http.MethodPost, "/api/v1/auth/logout", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

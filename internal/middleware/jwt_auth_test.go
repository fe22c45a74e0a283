package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkigram/backend/internal/auth"
)

func guardedEcho(tokens *auth.TokenService) *echo.Echo {
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"user_id": UserID(c)})
	}, JWTAuthMiddleware(tokens))
	return e
}

func TestGuardRejectsMissingCredential(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	e := guardedEcho(tokens)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "not logged in")
}

func TestGuardRejectsInvalidToken(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	e := guardedEcho(tokens)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "bogus"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token is not valid")
}

func TestGuardAcceptsCookieCredential(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	e := guardedEcho(tokens)

	token, err := tokens.Issue(12)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":12`)
}

func TestGuardAcceptsBearerHeader(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	e := guardedEcho(tokens)

	token, err := tokens.Issue(34)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":34`)
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/linkigram/backend/internal/apperrors"
	"github.com/linkigram/backend/internal/auth"
)

const userIDContextKey = "user_id"

// JWTAuthMiddleware resolves the session credential into a caller
// identity and rejects the request otherwise. The credential is read
// from the "token" cookie (set by login) or, failing that, from a
// Bearer Authorization header.
func JWTAuthMiddleware(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := credentialFromRequest(c)
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrNotAuthenticated.Error())
			}

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrInvalidToken.Error())
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}

func credentialFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// UserID returns the authenticated caller's id stored by the guard.
func UserID(c echo.Context) uint {
	id, _ := c.Get(userIDContextKey).(uint)
	return id
}

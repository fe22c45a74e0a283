package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/linkigram/backend/internal/apperrors"
	"github.com/linkigram/backend/internal/auth"
	"github.com/linkigram/backend/internal/models"
	"github.com/linkigram/backend/internal/repositories"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	userRepository repositories.UserRepository
	tokens         *auth.TokenService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		tokens:         tokens,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
}

// Register creates a new account. Duplicate usernames are rejected by
// the store's unique constraint.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username:       req.Username,
		Name:           req.Name,
		Email:          req.Email,
		Password:       hashedPassword,
		ProfilePicture: req.ProfilePicture,
		City:           req.City,
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, user.ToCompact())
}

// Login authenticates a user and sets the session cookie. Unknown
// username and wrong password produce the same error.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return httpError(apperrors.ErrInvalidCredentials)
		}
		return httpError(err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return httpError(apperrors.ErrInvalidCredentials)
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user.ToCompact(),
	})
}

// Logout clears the session cookie. Idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "User has been logged out"})
}

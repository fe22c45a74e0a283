package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/linkigram/backend/internal/apperrors"
	"github.com/linkigram/backend/internal/auth"
	"github.com/linkigram/backend/internal/middleware"
	"github.com/linkigram/backend/internal/models"
	"github.com/linkigram/backend/internal/repositories"
)

// UserHandler handles public profile reads and profile updates.
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterPublicRoutes registers unauthenticated profile reads.
func (h *UserHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUserByID)
	g.GET("/users/by-username/:username", h.GetUserByUsername)
	g.GET("/users/by-name/:name", h.GetUserByName)
}

// RegisterProfileRoutes registers authenticated profile mutations.
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.PUT("/users/:id", h.UpdateUser)
}

// GetUserByID returns a user's public profile.
func (h *UserHandler) GetUserByID(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user.ToCompact())
}

// GetUserByUsername returns a user's public profile by username.
func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user.ToCompact())
}

// GetUserByName returns a user's public profile by display name.
func (h *UserHandler) GetUserByName(c echo.Context) error {
	user, err := h.userRepository.GetUserByName(c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user.ToCompact())
}

// ListUsers returns all public profiles.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return httpError(err)
	}
	compacts := make([]models.UserCompact, len(users))
	for i, u := range users {
		compacts[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, compacts)
}

// UpdateUser applies a partial profile update. Only the account owner
// may update it; only supplied fields change; a new password is
// re-hashed before storage.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	if middleware.UserID(c) != id {
		return httpError(apperrors.ErrNotAuthorized)
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		return httpError(err)
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
		}
		user.Password = hashed
	}
	if req.ProfilePicture != "" {
		user.ProfilePicture = req.ProfilePicture
	}
	if req.City != "" {
		user.City = req.City
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user.ToCompact())
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(v), nil
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/linkigram/backend/internal/apperrors"
	"github.com/linkigram/backend/internal/middleware"
	"github.com/linkigram/backend/internal/models"
	"github.com/linkigram/backend/internal/repositories"
)

// FollowHandler handles follow-related HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.GET("/users/:id/followers", h.ListFollowers)
	g.POST("/users/:id/follow", h.AddFollow)
	g.DELETE("/users/:id/follow", h.RemoveFollow)
}

// ListFollowers returns the ids of users following the given user.
func (h *FollowHandler) ListFollowers(c echo.Context) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	ids, err := h.followRepository.GetFollowerIDs(userID)
	if err != nil {
		return httpError(err)
	}
	if ids == nil {
		ids = []uint{}
	}
	return c.JSON(http.StatusOK, ids)
}

// AddFollow follows the target user. Following someone already
// followed is a soft result, not an error.
func (h *FollowHandler) AddFollow(c echo.Context) error {
	targetID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	followerID := middleware.UserID(c)
	if followerID == targetID {
		return httpError(apperrors.ErrSelfFollow)
	}

	if _, err := h.userRepository.GetUserByID(targetID); err != nil {
		return httpError(err)
	}

	// Pre-check for the common case; the unique constraint stays the
	// authoritative guard under concurrent requests.
	following, err := h.followRepository.IsFollowing(followerID, targetID)
	if err != nil {
		return httpError(err)
	}
	if following {
		return c.JSON(http.StatusOK, echo.Map{"message": "Already following"})
	}

	follow := &models.Follow{
		FollowerID: followerID,
		FollowedID: targetID,
		CreatedAt:  time.Now(),
	}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyFollowing) {
			return c.JSON(http.StatusOK, echo.Map{"message": "Already following"})
		}
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Following now"})
}

// RemoveFollow unfollows the target user.
func (h *FollowHandler) RemoveFollow(c echo.Context) error {
	targetID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.followRepository.DeleteFollow(middleware.UserID(c), targetID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollowed"})
}

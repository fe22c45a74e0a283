package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/linkigram/backend/internal/middleware"
	"github.com/linkigram/backend/internal/models"
	"github.com/linkigram/backend/internal/repositories"
)

// FeedHandler composes the ordered post feed for a viewer.
type FeedHandler struct {
	postRepository   repositories.PostRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
) *FeedHandler {
	return &FeedHandler{
		postRepository:   postRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns posts enriched with author profiles.
//
// With ?userId= it returns that author's own listing: every post,
// scheduled ones included, newest first. Without it, it returns the
// viewer's aggregated feed: published posts by the viewer and everyone
// they follow, ordered created_at DESC with ascending id as tiebreak.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewerID := middleware.UserID(c)

	var posts []models.Post
	if param := c.QueryParam("userId"); param != "" {
		targetID, err := strconv.ParseUint(param, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid userId")
		}
		posts, err = h.postRepository.GetPostsByAuthor(uint(targetID))
		if err != nil {
			return httpError(err)
		}
	} else {
		followedIDs, err := h.followRepository.GetFollowedIDs(viewerID)
		if err != nil {
			return httpError(err)
		}
		authorIDs := append([]uint{viewerID}, followedIDs...)
		posts, err = h.postRepository.GetPublishedPostsByAuthors(authorIDs)
		if err != nil {
			return httpError(err)
		}
	}

	// Build author map once per distinct author
	authorMap := make(map[uint]models.UserCompact)
	for _, p := range posts {
		if _, ok := authorMap[p.UserID]; ok {
			continue
		}
		user, err := h.userRepository.GetUserByID(p.UserID)
		if err != nil {
			return httpError(err)
		}
		authorMap[p.UserID] = user.ToCompact()
	}

	feed := make([]models.FeedPost, len(posts))
	for i, p := range posts {
		feed[i] = models.FeedPost{
			Post:   p,
			Author: authorMap[p.UserID],
		}
	}

	return c.JSON(http.StatusOK, feed)
}

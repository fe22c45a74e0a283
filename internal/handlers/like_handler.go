package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/linkigram/backend/internal/apperrors"
	"github.com/linkigram/backend/internal/middleware"
	"github.com/linkigram/backend/internal/models"
	"github.com/linkigram/backend/internal/repositories"
)

// LikeHandler handles like-related HTTP requests
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		postRepository: postRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.GET("/posts/:id/likes", h.ListLikerIDs)
	g.POST("/posts/:id/likes", h.AddLike)
	g.DELETE("/posts/:id/likes", h.RemoveLike)
}

// ListLikerIDs returns the ids of users who liked the post.
func (h *LikeHandler) ListLikerIDs(c echo.Context) error {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	ids, err := h.likeRepository.GetLikerIDs(postID)
	if err != nil {
		return httpError(err)
	}
	if ids == nil {
		ids = []uint{}
	}
	return c.JSON(http.StatusOK, ids)
}

// AddLike likes a post once per user; a second like is a conflict.
func (h *LikeHandler) AddLike(c echo.Context) error {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		return httpError(err)
	}

	// Pre-check for the common case; the unique constraint stays the
	// authoritative guard under concurrent requests.
	liked, err := h.likeRepository.HasUserLikedPost(postID, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	if liked {
		return httpError(apperrors.ErrAlreadyLiked)
	}

	like := &models.Like{
		PostID:    postID,
		UserID:    middleware.UserID(c),
		CreatedAt: time.Now(),
	}
	if err := h.likeRepository.CreateLike(like); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Like has been created"})
}

// RemoveLike removes the caller's like from a post.
func (h *LikeHandler) RemoveLike(c echo.Context) error {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.likeRepository.DeleteLike(postID, middleware.UserID(c)); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Like has been deleted"})
}

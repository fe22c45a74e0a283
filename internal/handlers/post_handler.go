package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/linkigram/backend/internal/apperrors"
	"github.com/linkigram/backend/internal/middleware"
	"github.com/linkigram/backend/internal/models"
	"github.com/linkigram/backend/internal/repositories"
	"github.com/linkigram/backend/internal/scheduler"
)

// PostHandler handles post creation and deletion.
type PostHandler struct {
	postRepository repositories.PostRepository
	scheduler      *scheduler.Scheduler
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, sched *scheduler.Scheduler) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		scheduler:      sched,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a post. With a future scheduled_at the post is
// stored unpublished and a publication timer is registered; otherwise
// it is published immediately.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := middleware.UserID(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	now := time.Now()
	scheduled := req.ScheduledAt != nil && req.ScheduledAt.After(now)

	post := &models.Post{
		UserID:          userID,
		Description:     req.Description,
		Image:           req.Image,
		CreatedAt:       now,
		ScheduledAt:     req.ScheduledAt,
		IsPublished:     !scheduled,
		CommentDisabled: req.CommentDisabled,
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		return httpError(err)
	}

	if scheduled {
		h.scheduler.Schedule(post.ID, *req.ScheduledAt)
	}

	return c.JSON(http.StatusCreated, post)
}

// DeletePost deletes a post the caller owns and cancels any pending
// publication. Ownership is checked before anything is mutated.
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		return httpError(err)
	}
	if post.UserID != middleware.UserID(c) {
		return httpError(apperrors.ErrNotAuthorized)
	}

	if err := h.postRepository.DeletePost(id); err != nil {
		return httpError(err)
	}
	h.scheduler.Cancel(id)

	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

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

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		userRepository:    userRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.ListComments)
	g.POST("/comments", h.CreateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// ListComments returns a post's comments, newest first, each enriched
// with its author's public profile.
func (h *CommentHandler) ListComments(c echo.Context) error {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		return httpError(err)
	}

	authorMap := make(map[uint]models.UserCompact)
	enriched := make([]models.CommentWithAuthor, len(comments))
	for i, comment := range comments {
		author, ok := authorMap[comment.UserID]
		if !ok {
			user, err := h.userRepository.GetUserByID(comment.UserID)
			if err != nil {
				return httpError(err)
			}
			author = user.ToCompact()
			authorMap[comment.UserID] = author
		}
		enriched[i] = models.CommentWithAuthor{Comment: comment, Author: author}
	}

	return c.JSON(http.StatusOK, enriched)
}

// CreateComment adds a comment to a post unless the post has comments
// disabled at call time.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := middleware.UserID(c)

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(req.PostID)
	if err != nil {
		return httpError(err)
	}
	if post.CommentDisabled {
		return httpError(apperrors.ErrCommentsDisabled)
	}

	comment := &models.Comment{
		PostID:      req.PostID,
		UserID:      userID,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment removes a comment the caller owns. A foreign comment
// and a nonexistent one are both reported as not found.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	commentID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.commentRepository.DeleteCommentOwned(commentID, middleware.UserID(c)); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted successfully"})
}

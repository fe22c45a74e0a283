package repositories

import (
	"github.com/linkigram/backend/internal/apperrors"
	"github.com/linkigram/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	// GetCommentsByPostID returns a post's comments, newest first.
	GetCommentsByPostID(postID uint) ([]models.Comment, error)
	// DeleteCommentOwned deletes the comment only when it exists and is
	// owned by userID. Both failure cases report ErrCommentNotFound so
	// callers cannot distinguish a foreign comment from a missing one.
	DeleteCommentOwned(commentID, userID uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return apperrors.Store("create comment", err)
	}
	return nil
}

func (r *PostgresCommentRepository) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, apperrors.Store("get comments by post", err)
	}
	return comments, nil
}

func (r *PostgresCommentRepository) DeleteCommentOwned(commentID, userID uint) error {
	res := r.db.Where("id = ? AND user_id = ?", commentID, userID).
		Delete(&models.Comment{})
	if res.Error != nil {
		return apperrors.Store("delete comment", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PostID      uint      `json:"post_id" gorm:"index"`
	UserID      uint      `json:"user_id" gorm:"index"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommentWithAuthor is a comment enriched with its author's public profile.
type CommentWithAuthor struct {
	Comment
	Author UserCompact `json:"author"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	PostID      uint   `json:"post_id" validate:"required"`
	Description string `json:"description" validate:"required,min=1,max=500"`
}

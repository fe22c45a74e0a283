package models

import "time"

// Post represents a social media post. A post created with a future
// ScheduledAt starts unpublished and is flipped by the scheduler when
// the instant elapses; without one it is published immediately.
type Post struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	UserID          uint       `json:"user_id" gorm:"index"`
	Description     string     `json:"description,omitempty"`
	Image           string     `json:"image"`
	CreatedAt       time.Time  `json:"created_at" gorm:"index"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	IsPublished     bool       `json:"is_published"`
	CommentDisabled bool       `json:"comment_disabled"`

	// Dependent rows are removed with the post by the store's
	// foreign-key constraints.
	Comments []Comment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Likes    []Like    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Description     string     `json:"description,omitempty" validate:"omitempty,max=500"`
	Image           string     `json:"image" validate:"required"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	CommentDisabled bool       `json:"comment_disabled"`
}

// FeedPost is a post enriched with its author's public profile.
type FeedPost struct {
	Post
	Author UserCompact `json:"author"`
}

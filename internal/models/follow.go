package models

import "time"

// Follow represents a directed follow edge: follower sees the followed
// user's published posts in their feed. One edge per ordered pair.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_followed"`
	FollowedID uint      `json:"followed_id" gorm:"index;uniqueIndex:idx_follower_followed"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName keeps the original relationship table name.
func (Follow) TableName() string { return "relationships" }

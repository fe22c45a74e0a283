package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a registered account.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;size:50"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // bcrypt hash, never serialized
	ProfilePicture string    `json:"profile_picture,omitempty"`
	City           string    `json:"city"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserCompact is the public projection of a user embedded in posts,
// comments and profile reads.
type UserCompact struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	City           string `json:"city"`
}

// ToCompact strips everything that must not leave the server.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:             u.ID,
		Username:       u.Username,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
		City:           u.City,
	}
}

// RegisterRequest defines the request body for account registration.
type RegisterRequest struct {
	Username       string `json:"username" validate:"required,min=2,max=50"`
	Name           string `json:"name" validate:"required,min=2,max=50"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	ProfilePicture string `json:"profile_picture,omitempty" validate:"omitempty,url"`
	City           string `json:"city" validate:"required"`
}

// LoginRequest defines the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest defines the request body for a partial profile
// update; only supplied fields change.
type UpdateUserRequest struct {
	Username       string `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
	Name           string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Password       string `json:"password,omitempty" validate:"omitempty,min=8"`
	ProfilePicture string `json:"profile_picture,omitempty" validate:"omitempty,url"`
	City           string `json:"city,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

package repositories

import (
	"errors"

	"github.com/linkigram/backend/internal/apperrors"
	"github.com/linkigram/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	// CreateLike inserts a like; the composite unique index makes a
	// second like from the same user fail with ErrAlreadyLiked even
	// under concurrent inserts.
	CreateLike(like *models.Like) error
	DeleteLike(postID, userID uint) error
	GetLikerIDs(postID uint) ([]uint, error)
	HasUserLikedPost(postID, userID uint) (bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	if err := r.db.Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyLiked
		}
		return apperrors.Store("create like", err)
	}
	return nil
}

func (r *PostgresLikeRepository) DeleteLike(postID, userID uint) error {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return apperrors.Store("delete like", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrLikeNotFound
	}
	return nil
}

func (r *PostgresLikeRepository) GetLikerIDs(postID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Like{}).
		Where("post_id = ?", postID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, apperrors.Store("get liker ids", err)
	}
	return ids, nil
}

func (r *PostgresLikeRepository) HasUserLikedPost(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Store("check like", err)
	}
	return count > 0, nil
}

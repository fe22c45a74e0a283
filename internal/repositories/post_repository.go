package repositories

import (
	"errors"

	"github.com/linkigram/backend/internal/apperrors"
	"github.com/linkigram/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	// GetPostsByAuthor returns every post by the author, published or
	// not, newest first. This is the author-facing listing.
	GetPostsByAuthor(userID uint) ([]models.Post, error)
	// GetPublishedPostsByAuthors returns published posts by any of the
	// given authors, ordered created_at DESC with id ASC as tiebreak.
	GetPublishedPostsByAuthors(userIDs []uint) ([]models.Post, error)
	// MarkPublished flips is_published for the post and reports whether
	// this call performed the flip. The conditional update makes the
	// Scheduled -> Published transition fire exactly once.
	MarkPublished(id uint) (bool, error)
	// GetPendingScheduled returns posts whose scheduled instant has not
	// yet produced a publication, for reconciliation on startup.
	GetPendingScheduled() ([]models.Post, error)
	DeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return apperrors.Store("create post", err)
	}
	return nil
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.Store("get post by id", err)
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetPostsByAuthor(userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, apperrors.Store("get posts by author", err)
	}
	return posts, nil
}

func (r *PostgresPostRepository) GetPublishedPostsByAuthors(userIDs []uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id IN ? AND is_published = ?", userIDs, true).
		Order("created_at DESC, id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, apperrors.Store("get published posts", err)
	}
	return posts, nil
}

func (r *PostgresPostRepository) MarkPublished(id uint) (bool, error) {
	res := r.db.Model(&models.Post{}).
		Where("id = ? AND is_published = ?", id, false).
		Update("is_published", true)
	if res.Error != nil {
		return false, apperrors.Store("mark post published", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresPostRepository) GetPendingScheduled() ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("is_published = ? AND scheduled_at IS NOT NULL", false).
		Find(&posts).Error
	if err != nil {
		return nil, apperrors.Store("get pending scheduled posts", err)
	}
	return posts, nil
}

func (r *PostgresPostRepository) DeletePost(id uint) error {
	res := r.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return apperrors.Store("delete post", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

package repositories

import (
	"sort"
	"sync"

	"github.com/linkigram/backend/internal/apperrors"
	"github.com/linkigram/backend/internal/models"
)

// In-memory repository implementations for tests. They enforce the
// same uniqueness and ordering guarantees as the Postgres versions.

// MockUserRepository is an in-memory UserRepository.
type MockUserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]models.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{nextID: 1, users: make(map[uint]models.User)}
}

func (r *MockUserRepository) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return apperrors.ErrUsernameTaken
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *MockUserRepository) GetUserByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (r *MockUserRepository) GetUserByUsername(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *MockUserRepository) GetUserByName(name string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Name == name {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *MockUserRepository) GetUsers() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *MockUserRepository) UpdateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.Username == user.Username && u.ID != user.ID {
			return apperrors.ErrUsernameTaken
		}
	}
	r.users[user.ID] = *user
	return nil
}

// MockPostRepository is an in-memory PostRepository. Attach comment
// and like mocks to mirror the store's delete cascade.
type MockPostRepository struct {
	mu     sync.Mutex
	nextID uint
	posts  map[uint]models.Post

	Comments *MockCommentRepository
	Likes    *MockLikeRepository
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{nextID: 1, posts: make(map[uint]models.Post)}
}

func (r *MockPostRepository) CreatePost(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = r.nextID
	r.nextID++
	r.posts[post.ID] = *post
	return nil
}

func (r *MockPostRepository) GetPostByID(id uint) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	return &p, nil
}

func sortFeed(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID < posts[j].ID
	})
}

func (r *MockPostRepository) GetPostsByAuthor(userID uint) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var posts []models.Post
	for _, p := range r.posts {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	sortFeed(posts)
	return posts, nil
}

func (r *MockPostRepository) GetPublishedPostsByAuthors(userIDs []uint) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	authors := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		authors[id] = true
	}
	var posts []models.Post
	for _, p := range r.posts {
		if authors[p.UserID] && p.IsPublished {
			posts = append(posts, p)
		}
	}
	sortFeed(posts)
	return posts, nil
}

func (r *MockPostRepository) MarkPublished(id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok || p.IsPublished {
		return false, nil
	}
	p.IsPublished = true
	r.posts[id] = p
	return true, nil
}

func (r *MockPostRepository) GetPendingScheduled() ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var posts []models.Post
	for _, p := range r.posts {
		if !p.IsPublished && p.ScheduledAt != nil {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (r *MockPostRepository) DeletePost(id uint) error {
	r.mu.Lock()
	if _, ok := r.posts[id]; !ok {
		r.mu.Unlock()
		return apperrors.ErrPostNotFound
	}
	delete(r.posts, id)
	r.mu.Unlock()

	if r.Comments != nil {
		r.Comments.deleteByPostID(id)
	}
	if r.Likes != nil {
		r.Likes.deleteByPostID(id)
	}
	return nil
}

// MockCommentRepository is an in-memory CommentRepository.
type MockCommentRepository struct {
	mu       sync.Mutex
	nextID   uint
	comments map[uint]models.Comment
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{nextID: 1, comments: make(map[uint]models.Comment)}
}

func (r *MockCommentRepository) CreateComment(comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = r.nextID
	r.nextID++
	r.comments[comment.ID] = *comment
	return nil
}

func (r *MockCommentRepository) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var comments []models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return comments, nil
}

func (r *MockCommentRepository) deleteByPostID(postID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.comments {
		if c.PostID == postID {
			delete(r.comments, id)
		}
	}
}

func (r *MockCommentRepository) DeleteCommentOwned(commentID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[commentID]
	if !ok || c.UserID != userID {
		return apperrors.ErrCommentNotFound
	}
	delete(r.comments, commentID)
	return nil
}

// MockLikeRepository is an in-memory LikeRepository.
type MockLikeRepository struct {
	mu     sync.Mutex
	nextID uint
	likes  map[uint]models.Like
}

func NewMockLikeRepository() *MockLikeRepository {
	return &MockLikeRepository{nextID: 1, likes: make(map[uint]models.Like)}
}

func (r *MockLikeRepository) CreateLike(like *models.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.PostID == like.PostID && l.UserID == like.UserID {
			return apperrors.ErrAlreadyLiked
		}
	}
	like.ID = r.nextID
	r.nextID++
	r.likes[like.ID] = *like
	return nil
}

func (r *MockLikeRepository) deleteByPostID(postID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.likes {
		if l.PostID == postID {
			delete(r.likes, id)
		}
	}
}

func (r *MockLikeRepository) DeleteLike(postID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.likes {
		if l.PostID == postID && l.UserID == userID {
			delete(r.likes, id)
			return nil
		}
	}
	return apperrors.ErrLikeNotFound
}

func (r *MockLikeRepository) GetLikerIDs(postID uint) ([]uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uint
	for _, l := range r.likes {
		if l.PostID == postID {
			ids = append(ids, l.UserID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *MockLikeRepository) HasUserLikedPost(postID, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.PostID == postID && l.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// MockFollowRepository is an in-memory FollowRepository.
type MockFollowRepository struct {
	mu      sync.Mutex
	nextID  uint
	follows map[uint]models.Follow
}

func NewMockFollowRepository() *MockFollowRepository {
	return &MockFollowRepository{nextID: 1, follows: make(map[uint]models.Follow)}
}

func (r *MockFollowRepository) CreateFollow(follow *models.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.follows {
		if f.FollowerID == follow.FollowerID && f.FollowedID == follow.FollowedID {
			return apperrors.ErrAlreadyFollowing
		}
	}
	follow.ID = r.nextID
	r.nextID++
	r.follows[follow.ID] = *follow
	return nil
}

func (r *MockFollowRepository) DeleteFollow(followerID, followedID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, f := range r.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			delete(r.follows, id)
			return nil
		}
	}
	return apperrors.ErrFollowNotFound
}

func (r *MockFollowRepository) IsFollowing(followerID, followedID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MockFollowRepository) GetFollowerIDs(userID uint) ([]uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uint
	for _, f := range r.follows {
		if f.FollowedID == userID {
			ids = append(ids, f.FollowerID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *MockFollowRepository) GetFollowedIDs(followerID uint) ([]uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uint
	for _, f := range r.follows {
		if f.FollowerID == followerID {
			ids = append(ids, f.FollowedID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkigram/backend/internal/models"
)

func TestCreatePostImmediatePublication(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.addUser(t, "alice", "password123")

	rec := env.do(t, http.MethodPost, "/api/v1/posts", models.CreatePostRequest{
		Description: "hello",
		Image:       "hello.jpg",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	post := decodeJSON[models.Post](t, rec)
	assert.True(t, post.IsPublished)
	assert.Nil(t, post.ScheduledAt)
}

func TestCreatePostRequiresImage(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.addUser(t, "alice", "password123")

	rec := env.do(t, http.MethodPost, "/api/v1/posts", models.CreatePostRequest{
		Description: "no image",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePostOwnership(t *testing.T) {
	env := newTestEnv(t)
	alice, aliceToken := env.addUser(t, "alice", "password123")
	_, bobToken := env.addUser(t, "bob", "password123")

	post := env.addPost(t, alice.ID, "mine", time.Now(), true, nil)
	path := fmt.Sprintf("/api/v1/posts/%d", post.ID)

	// A non-owner cannot delete; the post stays intact.
	rec := env.do(t, http.MethodDelete, path, nil, bobToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	_, err := env.posts.GetPostByID(post.ID)
	require.NoError(t, err)

	rec = env.do(t, http.MethodDelete, path, nil, aliceToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, path, nil, aliceToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePostRemovesCommentsAndLikes(t *testing.T) {
	env := newTestEnv(t)
	alice, aliceToken := env.addUser(t, "alice", "password123")
	_, bobToken := env.addUser(t, "bob", "password123")

	post := env.addPost(t, alice.ID, "short-lived", time.Now(), true, nil)

	rec := env.do(t, http.MethodPost, "/api/v1/comments", models.CreateCommentRequest{
		PostID:      post.ID,
		Description: "nice one",
	}, bobToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/likes", post.ID), nil, bobToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", post.ID), nil, aliceToken)
	require.Equal(t, http.StatusOK, rec.Code)

	// Dependent rows go with the post.
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d/comments", post.ID), nil, aliceToken)
	require.Equal(t, http.StatusOK, rec.Code)
	comments := decodeJSON[[]models.CommentWithAuthor](t, rec)
	assert.Empty(t, comments)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d/likes", post.ID), nil, aliceToken)
	require.Equal(t, http.StatusOK, rec.Code)
	likers := decodeJSON[[]uint](t, rec)
	assert.Empty(t, likers)
}

func TestDeleteScheduledPostCancelsPublication(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.addUser(t, "alice", "password123")

	scheduledAt := time.Now().Add(40 * time.Millisecond)
	rec := env.do(t, http.MethodPost, "/api/v1/posts", models.CreatePostRequest{
		Description: "doomed",
		Image:       "img.jpg",
		ScheduledAt: &scheduledAt,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	post := decodeJSON[models.Post](t, rec)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", post.ID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	// The pending timer must not resurrect anything.
	time.Sleep(80 * time.Millisecond)
	_, err := env.posts.GetPostByID(post.ID)
	assert.Error(t, err)
}

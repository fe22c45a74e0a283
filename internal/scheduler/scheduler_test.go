package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkigram/backend/internal/apperrors"
	"github.com/linkigram/backend/internal/models"
	"github.com/linkigram/backend/internal/repositories"
)

func makeScheduledPost(t *testing.T, repo *repositories.MockPostRepository, at time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:      1,
		Image:       "img.jpg",
		CreatedAt:   time.Now(),
		ScheduledAt: &at,
		IsPublished: false,
	}
	require.NoError(t, repo.CreatePost(post))
	return post
}

func waitPublished(t *testing.T, repo *repositories.MockPostRepository, id uint, timeout time.Duration) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		p, err := repo.GetPostByID(id)
		require.NoError(t, err)
		if p.IsPublished {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestScheduledPostPublishesAtInstant(t *testing.T) {
	repo := repositories.NewMockPostRepository()
	s := New(repo)
	defer s.Stop()

	post := makeScheduledPost(t, repo, time.Now().Add(50*time.Millisecond))
	s.Schedule(post.ID, *post.ScheduledAt)

	// Still unpublished before the instant elapses.
	p, err := repo.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.False(t, p.IsPublished)

	assert.True(t, waitPublished(t, repo, post.ID, time.Second))

	// Stays published on subsequent reads.
	p, err = repo.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.True(t, p.IsPublished)
}

func TestCancelStopsPendingPublication(t *testing.T) {
	repo := repositories.NewMockPostRepository()
	s := New(repo)
	defer s.Stop()

	post := makeScheduledPost(t, repo, time.Now().Add(30*time.Millisecond))
	s.Schedule(post.ID, *post.ScheduledAt)
	s.Cancel(post.ID)

	time.Sleep(80 * time.Millisecond)
	p, err := repo.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.False(t, p.IsPublished)
}

func TestStartPublishesOverduePosts(t *testing.T) {
	repo := repositories.NewMockPostRepository()

	// Simulates a restart: the scheduled instant elapsed while no
	// process was running.
	post := makeScheduledPost(t, repo, time.Now().Add(-time.Minute))

	s := New(repo)
	defer s.Stop()
	require.NoError(t, s.Start())

	p, err := repo.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.True(t, p.IsPublished)
}

func TestStartRearmsFuturePosts(t *testing.T) {
	repo := repositories.NewMockPostRepository()
	post := makeScheduledPost(t, repo, time.Now().Add(40*time.Millisecond))

	s := New(repo)
	defer s.Stop()
	require.NoError(t, s.Start())

	p, err := repo.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.False(t, p.IsPublished)

	assert.True(t, waitPublished(t, repo, post.ID, time.Second))
}

func TestPublicationFiresExactlyOnce(t *testing.T) {
	repo := repositories.NewMockPostRepository()
	post := makeScheduledPost(t, repo, time.Now().Add(-time.Second))

	s := New(repo)
	defer s.Stop()

	// A timer firing and the startup scan racing the same post must
	// flip it only once.
	flipped, err := repo.MarkPublished(post.ID)
	require.NoError(t, err)
	assert.True(t, flipped)

	flipped, err = repo.MarkPublished(post.ID)
	require.NoError(t, err)
	assert.False(t, flipped)
}

// notReadyPostRepo simulates a store whose schema is not usable yet,
// e.g. a scheduler started before migration.
type notReadyPostRepo struct {
	*repositories.MockPostRepository
}

func (r *notReadyPostRepo) GetPendingScheduled() ([]models.Post, error) {
	return nil, apperrors.Store("get pending scheduled posts", errors.New(`relation "posts" does not exist`))
}

func TestStartFailsWhenStoreNotReady(t *testing.T) {
	s := New(&notReadyPostRepo{repositories.NewMockPostRepository()})
	defer s.Stop()

	err := s.Start()
	require.Error(t, err)
	assert.True(t, apperrors.IsStoreError(err))
}

func TestScheduleAfterStopIsNoop(t *testing.T) {
	repo := repositories.NewMockPostRepository()
	post := makeScheduledPost(t, repo, time.Now().Add(20*time.Millisecond))

	s := New(repo)
	s.Stop()
	s.Schedule(post.ID, *post.ScheduledAt)

	time.Sleep(60 * time.Millisecond)
	p, err := repo.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.False(t, p.IsPublished)
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/linkigram/backend/internal/auth"
	"github.com/linkigram/backend/internal/middleware"
	"github.com/linkigram/backend/internal/models"
	"github.com/linkigram/backend/internal/repositories"
	"github.com/linkigram/backend/internal/scheduler"
	"github.com/linkigram/backend/pkg/validators"
)

// testEnv wires the full route surface over in-memory repositories,
// with the real token service and authorization guard in the path.
type testEnv struct {
	e      *echo.Echo
	tokens *auth.TokenService
	sched  *scheduler.Scheduler

	users    *repositories.MockUserRepository
	posts    *repositories.MockPostRepository
	comments *repositories.MockCommentRepository
	likes    *repositories.MockLikeRepository
	follows  *repositories.MockFollowRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		tokens:   auth.NewTokenService("test-secret", time.Hour),
		users:    repositories.NewMockUserRepository(),
		posts:    repositories.NewMockPostRepository(),
		comments: repositories.NewMockCommentRepository(),
		likes:    repositories.NewMockLikeRepository(),
		follows:  repositories.NewMockFollowRepository(),
	}
	env.posts.Comments = env.comments
	env.posts.Likes = env.likes
	env.sched = scheduler.New(env.posts)
	t.Cleanup(env.sched.Stop)

	e := echo.New()
	e.Validator = validators.NewValidator()

	public := e.Group("/api/v1")
	NewAuthHandler(env.users, env.tokens).RegisterAuthRoutes(public.Group("/auth"))
	userHandler := NewUserHandler(env.users)
	userHandler.RegisterPublicRoutes(public)

	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(env.tokens))
	userHandler.RegisterProfileRoutes(api)
	NewFeedHandler(env.posts, env.users, env.follows).RegisterFeedRoutes(api)
	NewPostHandler(env.posts, env.sched).RegisterPostRoutes(api)
	NewCommentHandler(env.comments, env.posts, env.users).RegisterCommentRoutes(api)
	NewLikeHandler(env.likes, env.posts).RegisterLikeRoutes(api)
	NewFollowHandler(env.follows, env.users).RegisterFollowRoutes(api)

	env.e = e
	return env
}

// addUser creates a user directly in the store and returns it with a
// valid session token.
func (env *testEnv) addUser(t *testing.T, username, password string) (*models.User, string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Name:     username,
		Email:    username + "@example.com",
		Password: hash,
		City:     "Berlin",
	}
	require.NoError(t, env.users.CreateUser(user))

	token, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

// do performs a request against the wired routes. An empty token
// leaves the request unauthenticated.
func (env *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

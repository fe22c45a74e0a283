package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for every failure class the API distinguishes.
// Handlers map these onto HTTP statuses; repositories and services
// return them instead of raw storage errors.
var (
	// Authentication / authorization
	ErrNotAuthenticated   = errors.New("not logged in")
	ErrInvalidToken       = errors.New("token is not valid")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthorized      = errors.New("not authorized")

	// Conflicts. ErrAlreadyFollowing is surfaced as a soft result,
	// not a failure.
	ErrUsernameTaken    = errors.New("username already taken")
	ErrAlreadyLiked     = errors.New("post already liked")
	ErrAlreadyFollowing = errors.New("already following this user")

	// Not found
	ErrUserNotFound    = errors.New("user not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrLikeNotFound    = errors.New("like not found")
	ErrFollowNotFound  = errors.New("follow relationship not found")

	// Policy
	ErrCommentsDisabled = errors.New("comments are disabled for this post")
	ErrSelfFollow       = errors.New("cannot follow yourself")
)

// StoreError wraps an unexpected storage failure. The wrapped error is
// for logs only; callers surface a generic message to the client.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a StoreError, or returns nil if err is nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err is (or wraps) a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

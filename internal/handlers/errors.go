package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/linkigram/backend/internal/apperrors"
)

// httpError maps the error taxonomy onto HTTP statuses. Storage
// failures are logged and surfaced as a generic 500 without internal
// detail.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, apperrors.ErrNotAuthenticated),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	case errors.Is(err, apperrors.ErrNotAuthorized),
		errors.Is(err, apperrors.ErrCommentsDisabled):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, apperrors.ErrUsernameTaken),
		errors.Is(err, apperrors.ErrAlreadyLiked):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrPostNotFound),
		errors.Is(err, apperrors.ErrCommentNotFound),
		errors.Is(err, apperrors.ErrLikeNotFound),
		errors.Is(err, apperrors.ErrFollowNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, apperrors.ErrSelfFollow):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	default:
		log.Printf("Internal error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/thehex/board/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error categories to their HTTP status codes.
//   - Logs collaborator and unexpected errors without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrAuth):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrAlreadyMember):
		return http.StatusConflict, "you are already a member"
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict, "an account with this email already exists"
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "account not found"
	}

	event := log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path())
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		event = event.Str("request_id", id)
	}

	if errors.Is(err, domain.ErrCollaborator) {
		event.Msg("collaborator failure")
		return http.StatusServiceUnavailable, "service temporarily unavailable, please try again"
	}

	// Unexpected error: log the real cause, return a generic message.
	event.Msg("unhandled error")
	return http.StatusInternalServerError, "internal server error"
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quang/user-service/internal/api/handler"
	"github.com/quang/user-service/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders validation failures with the field→message map as data.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders every error in the canonical envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, data := resolveError(err, log, c)
		_ = c.JSON(code, handler.NewResponse(msg, data, code))
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, any) {
	// Validation failures carry the per-field messages as data.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "Data is invalid", ve.Fields
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	// Known domain errors → deterministic HTTP codes. The bad-credentials
	// message stays uniform so usernames cannot be enumerated.
	switch {
	case errors.Is(err, domain.ErrBadCredentials), errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Incorrect username or password", nil
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Authentication required", nil
	case errors.Is(err, domain.ErrAccountLocked):
		return http.StatusForbidden, "Account is locked", nil
	case errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusForbidden, "Account is disabled", nil
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access forbidden", nil
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found", nil
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "Data is invalid: " + err.Error(), nil
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many failed login attempts", nil
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error", nil
}

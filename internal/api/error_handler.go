package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/innsight/hotel-admin/internal/core/auth"
	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/pkg/logger"
)

// errorResponse is the envelope for errors raised outside an action. Action
// paths answer with domain.ActionResult and never reach this handler.
type errorResponse struct {
	Error string `json:"error"`
}

type sentinel struct {
	err    error
	status int
	msg    string
}

// sentinels is checked in order; the first match wins.
var sentinels = []sentinel{
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrPermissionDenied, http.StatusForbidden, "access forbidden"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrUnknownContentType, http.StatusBadRequest, "unknown content type"},
	{domain.ErrUnknownForm, http.StatusBadRequest, "invalid form"},
	{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	{domain.ErrUserExists, http.StatusConflict, "user already exists"},
	{domain.ErrSetupNotConfigured, http.StatusBadRequest, "setup secret not configured on server"},
	{domain.ErrInvalidSetupSecret, http.StatusUnauthorized, "invalid setup secret"},
}

// NewHTTPErrorHandler renders errors that escape a handler as
// {"error": "<message>"}. Gate redirects become a 303, known sentinels get
// their status and anything else is logged and reported as a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var redirect *auth.RedirectError
		if errors.As(err, &redirect) {
			_ = c.Redirect(http.StatusSeeOther, redirect.Location)
			return
		}

		code, msg := resolveError(err)
		if code == http.StatusInternalServerError {
			l := logger.Ctx(c.Request().Context(), log)
			l.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error) (int, string) {
	// Echo's own errors: bind failures, router 404/405, rate limiter.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, http.StatusText(he.Code)
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return s.status, s.msg
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

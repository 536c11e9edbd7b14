package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/innsight/hotel-admin/internal/core/auth"
	"github.com/innsight/hotel-admin/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
		wantLog  bool
	}{
		{"wrapped sentinel", fmt.Errorf("list: %w", domain.ErrPermissionDenied), http.StatusForbidden, `{"error":"access forbidden"}`, false},
		{"echo not found", echo.ErrNotFound, http.StatusNotFound, `{"error":"Not Found"}`, false},
		{"unknown error", errors.New("dial tcp: refused"), http.StatusInternalServerError, `{"error":"internal server error"}`, true},
		{"echo internal", echo.NewHTTPError(http.StatusBadGateway, "upstream detail"), http.StatusBadGateway, `{"error":"Bad Gateway"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/content/users", nil), rec)

			NewHTTPErrorHandler(zerolog.New(&logs))(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, tt.wantLog, logs.Len() > 0)
			assert.NotContains(t, rec.Body.String(), "refused")
		})
	}
}

func TestHTTPErrorHandler_Redirect(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users", nil), rec)

	err := &auth.RedirectError{Location: auth.UnauthorizedPath, Cause: domain.ErrPermissionDenied}
	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, auth.UnauthorizedPath, rec.Header().Get(echo.HeaderLocation))
}

func TestHTTPErrorHandler_Head(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodHead, "/api/auth/session", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrUnauthenticated, c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

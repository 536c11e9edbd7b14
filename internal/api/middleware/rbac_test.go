package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/innsight/hotel-admin/internal/core/auth"
	"github.com/innsight/hotel-admin/internal/core/domain"
)

func requestAs(role domain.Role) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if role == "" {
		return req
	}
	ctx := auth.WithSession(context.Background(), &domain.Session{UserID: "u1", Role: role})
	return req.WithContext(ctx)
}

func TestRequirePage(t *testing.T) {
	gate := auth.NewGate(auth.ContextProvider{})
	tests := []struct {
		name     string
		role     domain.Role
		wantCode int
		wantLoc  string
	}{
		{"anonymous", "", http.StatusSeeOther, auth.SignInPath},
		{"too low", domain.RoleFrontDesk, http.StatusSeeOther, auth.UnauthorizedPath},
		{"allowed", domain.RoleAdmin, http.StatusOK, ""},
		{"above", domain.RoleSuperAdmin, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(requestAs(tt.role), rec)

			handler := RequirePage(gate, domain.RoleAdmin)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if loc := rec.Header().Get(echo.HeaderLocation); loc != tt.wantLoc {
				t.Fatalf("expected location %q, got %q", tt.wantLoc, loc)
			}
		})
	}
}

func TestRequireAPI_Forbids(t *testing.T) {
	gate := auth.NewGate(auth.ContextProvider{})
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(requestAs(domain.RoleHousekeeping), rec)

	handler := RequireAPI(gate, domain.RoleAdmin, "view users")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	var res domain.ActionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if res.Code() != domain.CodePermissionDenied {
		t.Fatalf("expected PERMISSION_DENIED, got %+v", res)
	}
}

func TestRequireAPI_AnyRole(t *testing.T) {
	gate := auth.NewGate(auth.ContextProvider{})
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(requestAs(""), rec)
	handler := RequireAPI(gate, AnyRole, "view the session")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(requestAs(domain.RoleHousekeeping), rec)
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSetupRedirect(t *testing.T) {
	tests := []struct {
		path     string
		enabled  bool
		wantCode int
	}{
		{"/", true, http.StatusTemporaryRedirect},
		{"/users", true, http.StatusTemporaryRedirect},
		{"/setup", true, http.StatusOK},
		{"/api/setup/check", true, http.StatusOK},
		{"/health/ready", true, http.StatusOK},
		{"/setupx", true, http.StatusTemporaryRedirect},
		{"/users", false, http.StatusOK},
	}

	for _, tt := range tests {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, tt.path, nil), rec)

		handler := SetupRedirect(tt.enabled)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("%s: handler error: %v", tt.path, err)
		}
		if rec.Code != tt.wantCode {
			t.Fatalf("%s (enabled=%v): expected %d, got %d", tt.path, tt.enabled, tt.wantCode, rec.Code)
		}
	}
}

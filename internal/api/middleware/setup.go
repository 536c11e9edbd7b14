package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// SetupPath is the page that bootstraps the first super admin.
const SetupPath = "/setup"

var setupExempt = []string{"/api", SetupPath, "/health", "/metrics", "/swagger"}

// SetupRedirect sends every page request to /setup while setup mode is on.
// API, health and documentation routes are left alone.
func SetupRedirect(enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !enabled {
			return next
		}
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, prefix := range setupExempt {
				if path == prefix || strings.HasPrefix(path, prefix+"/") {
					return next(c)
				}
			}
			return c.Redirect(http.StatusTemporaryRedirect, SetupPath)
		}
	}
}

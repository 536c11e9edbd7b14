package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/innsight/hotel-admin/internal/core/auth"
	"github.com/innsight/hotel-admin/internal/core/domain"
)

// AnyRole admits every authenticated caller.
const AnyRole domain.Role = ""

// RequirePage gates a page route in Redirect mode: anonymous callers go to
// the sign-in page and callers below min go to /unauthorized.
func RequirePage(gate *auth.Gate, min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := check(c, gate, min, auth.Redirect); err != nil {
				var re *auth.RedirectError
				if errors.As(err, &re) {
					return c.Redirect(http.StatusSeeOther, re.Location)
				}
				return err
			}
			return next(c)
		}
	}
}

// RequireAPI gates an API route in NoRedirect mode and answers failures
// with a structured result.
func RequireAPI(gate *auth.Gate, min domain.Role, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := check(c, gate, min, auth.NoRedirect); err != nil {
				res := auth.FailureResult(err, action)
				if res.Code() == domain.CodeServerError {
					return err
				}
				return c.JSON(res.HTTPStatus(http.StatusOK), res)
			}
			return next(c)
		}
	}
}

func check(c echo.Context, gate *auth.Gate, min domain.Role, mode auth.Mode) (*domain.Session, error) {
	ctx := c.Request().Context()
	if min == AnyRole {
		return gate.RequireAuthenticated(ctx, mode)
	}
	return gate.RequireMinRole(ctx, min, mode)
}

// Package auth gates requests on the caller's session and role.
//
// Page handlers use Redirect mode and translate a *RedirectError into a
// navigation. API handlers always use NoRedirect and map the returned
// sentinel errors onto structured responses.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/internal/core/ports"
)

const (
	SignInPath       = "/auth/signin"
	UnauthorizedPath = "/unauthorized"
)

// Mode selects how a failed check is reported.
type Mode int

const (
	NoRedirect Mode = iota
	Redirect
)

// RedirectError asks a page handler to navigate elsewhere.
type RedirectError struct {
	Location string
	Cause    error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to %s: %v", e.Location, e.Cause)
}

func (e *RedirectError) Unwrap() error { return e.Cause }

// Gate wraps a SessionProvider with role checks.
type Gate struct {
	provider ports.SessionProvider
}

func NewGate(provider ports.SessionProvider) *Gate {
	return &Gate{provider: provider}
}

// CurrentSession returns the caller's session, or nil when there is none.
func (g *Gate) CurrentSession(ctx context.Context) (*domain.Session, error) {
	s, err := g.provider.CurrentSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return s, nil
}

// RequireAuthenticated fails with domain.ErrUnauthenticated when no session exists.
func (g *Gate) RequireAuthenticated(ctx context.Context, mode Mode) (*domain.Session, error) {
	s, err := g.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fail(mode, domain.ErrUnauthenticated)
	}
	return s, nil
}

// RequireRole passes only for an exact role match.
func (g *Gate) RequireRole(ctx context.Context, role domain.Role, mode Mode) (*domain.Session, error) {
	s, err := g.RequireAuthenticated(ctx, mode)
	if err != nil {
		return nil, err
	}
	if s.Role != role {
		return nil, fail(mode, domain.ErrPermissionDenied)
	}
	return s, nil
}

// RequireMinRole passes when the session role ranks at least min.
func (g *Gate) RequireMinRole(ctx context.Context, min domain.Role, mode Mode) (*domain.Session, error) {
	s, err := g.RequireAuthenticated(ctx, mode)
	if err != nil {
		return nil, err
	}
	if !domain.AtLeast(s.Role, min) {
		return nil, fail(mode, domain.ErrPermissionDenied)
	}
	return s, nil
}

func fail(mode Mode, cause error) error {
	if mode != Redirect {
		return cause
	}
	loc := SignInPath
	if errors.Is(cause, domain.ErrPermissionDenied) {
		loc = UnauthorizedPath
	}
	return &RedirectError{Location: loc, Cause: cause}
}

// FailureResult converts a gate error into the ActionResult an API caller sees.
func FailureResult(err error, action string) domain.ActionResult {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return domain.Failure(domain.CodeUnauthenticated, "Unauthorized",
			fmt.Sprintf("You must be signed in to %s.", action))
	case errors.Is(err, domain.ErrPermissionDenied):
		return domain.Failure(domain.CodePermissionDenied, "Insufficient permissions",
			fmt.Sprintf("You don't have permission to %s.", action))
	default:
		return domain.ServerFailure("")
	}
}

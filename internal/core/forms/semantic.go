package forms

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/internal/core/ports"
)

// Check is a server-side validation of one field. It receives the field's
// normalised value and the whole submission and returns a non-empty message
// when the value is invalid. err is reserved for infrastructure failures.
// Checks observe state; they never mutate it.
type Check func(ctx context.Context, value any, data domain.Values) (msg string, err error)

// Checks maps a field name to its check.
type Checks map[string]Check

// RunChecks runs every check concurrently and waits for all of them, so the
// result names every invalid field at once.
func RunChecks(ctx context.Context, checks Checks, data domain.Values) (domain.FieldErrors, error) {
	if len(checks) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		mu   sync.Mutex
		errs = make(domain.FieldErrors)
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		check := checks[name]
		g.Go(func() error {
			msg, err := check(gctx, data[name], data)
			if err != nil {
				return fmt.Errorf("check %s: %w", name, err)
			}
			if msg != "" {
				mu.Lock()
				errs[name] = msg
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}

// UniqueEmail rejects an email that belongs to an existing user. When
// excludeIDField is set, a match whose ID equals that field's value (the
// record being edited) is allowed.
func UniqueEmail(users ports.UserFinder, excludeIDField string) Check {
	return func(ctx context.Context, value any, data domain.Values) (string, error) {
		email, _ := value.(string)
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			return "", nil
		}
		existing, err := users.FindByEmail(ctx, email)
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		if excludeIDField != "" {
			if id, _ := data.String(excludeIDField); id != "" && id == existing.ID {
				return "", nil
			}
		}
		return "A user with this email already exists", nil
	}
}

// EqualsField requires the value to equal another submitted field.
func EqualsField(other, msg string) Check {
	return func(_ context.Context, value any, data domain.Values) (string, error) {
		if value != data[other] {
			return msg, nil
		}
		return "", nil
	}
}

// MatchesSecret requires the value to equal the configured secret exactly.
func MatchesSecret(secret string) Check {
	return func(_ context.Context, value any, _ domain.Values) (string, error) {
		if secret == "" {
			return "Setup secret not configured on server", nil
		}
		given, _ := value.(string)
		if subtle.ConstantTimeCompare([]byte(given), []byte(secret)) != 1 {
			return "Invalid setup secret", nil
		}
		return "", nil
	}
}

package forms

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/innsight/hotel-admin/internal/core/domain"
)

type counters struct {
	checks  atomic.Int32
	actions atomic.Int32
}

func (c *counters) check(msg string) Check {
	return func(context.Context, any, domain.Values) (string, error) {
		c.checks.Add(1)
		return msg, nil
	}
}

func (c *counters) action(context.Context, domain.Values) domain.ActionResult {
	c.actions.Add(1)
	return domain.Success("Done", "", nil)
}

func newTestRegistry(t *testing.T, c *counters, checks Checks, access func(context.Context) error) *Registry {
	t.Helper()
	r, err := NewRegistry(zerolog.Nop(), []string{"signup"}, Entry{
		ID:     "signup",
		Fields: testFields(),
		Checks: checks,
		Access: access,
		Action: c.action,
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func validInput() domain.Values {
	return domain.Values{"email": "guest@example.com", "role": "ADMIN"}
}

func TestRegistry_UnknownForm(t *testing.T) {
	c := &counters{}
	r := newTestRegistry(t, c, Checks{"email": c.check("")}, nil)

	res := r.Submit(context.Background(), "nope", validInput())
	if res.Code() != domain.CodeUnknownForm {
		t.Fatalf("expected UNKNOWN_FORM, got %+v", res)
	}
	if res.Alert == nil || res.Alert.Title != "Invalid Form" {
		t.Fatalf("expected invalid form alert, got %+v", res.Alert)
	}
	if c.checks.Load() != 0 || c.actions.Load() != 0 {
		t.Fatalf("nothing may run for an unknown form")
	}
}

func TestRegistry_StructuralFailureRunsNothingElse(t *testing.T) {
	c := &counters{}
	r := newTestRegistry(t, c, Checks{"email": c.check(""), "role": c.check("")}, nil)

	res := r.Submit(context.Background(), "signup", domain.Values{"email": "bad"})
	if res.Code() != domain.CodeValidationFailed {
		t.Fatalf("expected VALIDATION_FAILED, got %+v", res)
	}
	if res.FieldErrors["email"] == "" || res.FieldErrors["role"] == "" {
		t.Fatalf("expected field errors, got %v", res.FieldErrors)
	}
	if got := c.checks.Load(); got != 0 {
		t.Fatalf("expected 0 semantic checks, got %d", got)
	}
	if got := c.actions.Load(); got != 0 {
		t.Fatalf("expected 0 actions, got %d", got)
	}
}

func TestRegistry_SemanticFailureSkipsAction(t *testing.T) {
	c := &counters{}
	r := newTestRegistry(t, c, Checks{
		"email": c.check("A user with this email already exists"),
		"role":  c.check("Role is taken"),
		"name":  c.check(""),
	}, nil)

	res := r.Submit(context.Background(), "signup", validInput())
	if res.Code() != domain.CodeValidationFailed {
		t.Fatalf("expected VALIDATION_FAILED, got %+v", res)
	}
	if len(res.FieldErrors) != 2 {
		t.Fatalf("expected every failing check reported, got %v", res.FieldErrors)
	}
	if got := c.checks.Load(); got != 3 {
		t.Fatalf("expected all 3 checks to run, got %d", got)
	}
	if got := c.actions.Load(); got != 0 {
		t.Fatalf("expected 0 actions, got %d", got)
	}
}

func TestRegistry_ValidSubmissionRunsActionOnce(t *testing.T) {
	c := &counters{}
	var seen domain.Values
	r, err := NewRegistry(zerolog.Nop(), []string{"signup"}, Entry{
		ID:     "signup",
		Fields: testFields(),
		Checks: Checks{"email": c.check("")},
		Action: func(ctx context.Context, data domain.Values) domain.ActionResult {
			seen = data
			return c.action(ctx, data)
		},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	in := validInput()
	in["extra"] = "ignored"
	res := r.Submit(context.Background(), "signup", in)
	if !res.OK() {
		t.Fatalf("expected success, got %+v", res)
	}
	if got := c.actions.Load(); got != 1 {
		t.Fatalf("expected exactly 1 action, got %d", got)
	}
	if seen.Has("extra") {
		t.Fatalf("action must receive validated data only: %v", seen)
	}
}

func TestRegistry_CheckErrorIsServerError(t *testing.T) {
	c := &counters{}
	r := newTestRegistry(t, c, Checks{
		"email": func(context.Context, any, domain.Values) (string, error) {
			return "", errors.New("connection reset")
		},
	}, nil)

	res := r.Submit(context.Background(), "signup", validInput())
	if res.Code() != domain.CodeServerError {
		t.Fatalf("expected SERVER_ERROR, got %+v", res)
	}
	if res.Error.Description == "connection reset" {
		t.Fatalf("internal error leaked to caller")
	}
	if c.actions.Load() != 0 {
		t.Fatalf("action must not run after a check error")
	}
}

func TestRegistry_AccessRunsBeforeValidation(t *testing.T) {
	c := &counters{}
	r := newTestRegistry(t, c, Checks{"email": c.check("")}, func(context.Context) error {
		return domain.ErrUnauthenticated
	})

	res := r.Submit(context.Background(), "signup", domain.Values{})
	if res.Code() != domain.CodeUnauthenticated {
		t.Fatalf("expected UNAUTHENTICATED, got %+v", res)
	}
	if res.FieldErrors != nil {
		t.Fatalf("structural validation must not run: %v", res.FieldErrors)
	}
	if c.checks.Load() != 0 || c.actions.Load() != 0 {
		t.Fatalf("no check or action may run without access")
	}
}

func TestNewRegistry_Completeness(t *testing.T) {
	action := func(context.Context, domain.Values) domain.ActionResult { return domain.Success("", "", nil) }
	log := zerolog.Nop()

	if _, err := NewRegistry(log, []string{"a", "b"}, Entry{ID: "a", Action: action}); err == nil {
		t.Fatalf("expected error for missing declared form")
	}
	if _, err := NewRegistry(log, []string{"a"}, Entry{ID: "a", Action: action}, Entry{ID: "c", Action: action}); err == nil {
		t.Fatalf("expected error for undeclared form")
	}
	if _, err := NewRegistry(log, []string{"a"}, Entry{ID: "a", Action: action}, Entry{ID: "a", Action: action}); err == nil {
		t.Fatalf("expected error for duplicate form")
	}
	if _, err := NewRegistry(log, []string{"a"}, Entry{ID: "a"}); err == nil {
		t.Fatalf("expected error for missing action")
	}
	if _, err := NewRegistry(log, []string{"a"}, Entry{ID: "a", Action: action, Checks: Checks{"ghost": EqualsField("x", "")}}); err == nil {
		t.Fatalf("expected error for check on undeclared field")
	}

	r, err := NewRegistry(log, []string{"b", "a"}, Entry{ID: "a", Action: action}, Entry{ID: "b", Action: action})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids := r.IDs(); len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

// Package forms implements the declarative form pipeline: field definitions,
// structural validation, semantic checks and a registry that dispatches a
// submission to its business action.
//
// A submission runs lookup, structural validation, semantic checks and the
// action in that order. Each validation phase fails fast, so the action runs
// at most once and only on fully valid input.
package forms

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/innsight/hotel-admin/internal/core/auth"
	"github.com/innsight/hotel-admin/internal/core/domain"
)

// Action performs the business operation for validated data.
type Action func(ctx context.Context, data domain.Values) domain.ActionResult

// Entry binds a form identifier to its definition and behaviour.
type Entry struct {
	ID     string
	Fields Fields
	// Schema defaults to NewSchema(Fields).
	Schema *Schema
	Checks Checks
	// Access, when set, runs right after lookup. A non-nil error is a gate
	// failure (see auth.FailureResult); no validator runs after it.
	Access func(ctx context.Context) error
	Action Action
}

// Registry is the immutable form table built at startup. It is safe for
// concurrent use.
type Registry struct {
	entries map[string]Entry
	log     zerolog.Logger
}

// NewRegistry builds the table and asserts it is complete: every declared
// identifier has exactly one entry and nothing undeclared is registered.
func NewRegistry(log zerolog.Logger, declared []string, entries ...Entry) (*Registry, error) {
	want := make(map[string]bool, len(declared))
	for _, id := range declared {
		want[id] = false
	}

	r := &Registry{entries: make(map[string]Entry, len(entries)), log: log}
	for _, e := range entries {
		seen, ok := want[e.ID]
		if !ok {
			return nil, fmt.Errorf("forms: %q is registered but not declared", e.ID)
		}
		if seen {
			return nil, fmt.Errorf("forms: %q is registered twice", e.ID)
		}
		want[e.ID] = true

		if e.Action == nil {
			return nil, fmt.Errorf("forms: %q has no action", e.ID)
		}
		if e.Schema == nil {
			s, err := NewSchema(e.Fields)
			if err != nil {
				return nil, fmt.Errorf("forms: %q: %w", e.ID, err)
			}
			e.Schema = s
		}
		for name := range e.Checks {
			if _, ok := e.Fields.Lookup(name); !ok {
				return nil, fmt.Errorf("forms: %q has a check for undeclared field %q", e.ID, name)
			}
		}
		r.entries[e.ID] = e
	}

	var missing []string
	for id, seen := range want {
		if !seen {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("forms: declared but not registered: %v", missing)
	}
	return r, nil
}

// IDs returns the registered identifiers, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Fields returns the field definitions of formID for UI generation.
func (r *Registry) Fields(formID string) (Fields, bool) {
	e, ok := r.entries[formID]
	if !ok {
		return nil, false
	}
	return e.Schema.Fields(), true
}

// Submit runs the pipeline for formID.
func (r *Registry) Submit(ctx context.Context, formID string, raw domain.Values) domain.ActionResult {
	e, ok := r.entries[formID]
	if !ok {
		return domain.Failure(domain.CodeUnknownForm, "Invalid Form",
			"The form you are trying to submit does not exist.")
	}

	if e.Access != nil {
		if err := e.Access(ctx); err != nil {
			if res := auth.FailureResult(err, "submit this form"); res.Code() != domain.CodeServerError {
				return res
			}
			r.log.Error().Err(err).Str("form_id", formID).Msg("form access check failed")
			return domain.ServerFailure("")
		}
	}

	data, fieldErrs := e.Schema.Validate(raw)
	if len(fieldErrs) > 0 {
		return domain.ValidationFailure(fieldErrs)
	}

	fieldErrs, err := RunChecks(ctx, e.Checks, data)
	if err != nil {
		r.log.Error().Err(err).Str("form_id", formID).Msg("form data validation failed")
		return domain.Failure(domain.CodeServerError, "Validation Error",
			"An unexpected error occurred during validation.")
	}
	if len(fieldErrs) > 0 {
		return domain.ValidationFailure(fieldErrs)
	}

	return e.Action(ctx, data)
}

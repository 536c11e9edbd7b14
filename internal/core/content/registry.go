// Package content dispatches generic list/create/update/delete requests to
// the handler registered for a content type.
package content

import (
	"context"
	"fmt"
	"sort"

	"github.com/innsight/hotel-admin/internal/core/domain"
)

// Users is the only content type exposed today.
const Users = "users"

// Declared lists every content type that must have a handler.
var Declared = []string{Users}

// Handler serves one content type.
type Handler interface {
	List(ctx context.Context, params domain.ListParams) (*domain.ListResult, error)
	Create(ctx context.Context, data domain.Values) domain.ActionResult
	Update(ctx context.Context, id string, data domain.Values) domain.ActionResult
	Delete(ctx context.Context, id string) domain.ActionResult
}

// Registry is the immutable content-type table built at startup.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry asserts that every declared type has exactly one handler and
// nothing undeclared is registered.
func NewRegistry(declared []string, handlers map[string]Handler) (*Registry, error) {
	r := &Registry{handlers: make(map[string]Handler, len(handlers))}
	want := make(map[string]struct{}, len(declared))
	for _, t := range declared {
		want[t] = struct{}{}
	}
	for t, h := range handlers {
		if _, ok := want[t]; !ok {
			return nil, fmt.Errorf("content: %q is registered but not declared", t)
		}
		if h == nil {
			return nil, fmt.Errorf("content: %q has a nil handler", t)
		}
		r.handlers[t] = h
	}
	var missing []string
	for t := range want {
		if _, ok := r.handlers[t]; !ok {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("content: declared but not registered: %v", missing)
	}
	return r, nil
}

// Types returns the registered content types, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) lookup(contentType string) (Handler, bool) {
	h, ok := r.handlers[contentType]
	return h, ok
}

// List returns a page of contentType rows. The error wraps
// domain.ErrUnknownContentType for an unregistered type.
func (r *Registry) List(ctx context.Context, contentType string, params domain.ListParams) (*domain.ListResult, error) {
	h, ok := r.lookup(contentType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownContentType, contentType)
	}
	return h.List(ctx, params.Normalize())
}

func (r *Registry) Create(ctx context.Context, contentType string, data domain.Values) domain.ActionResult {
	h, ok := r.lookup(contentType)
	if !ok {
		return unknownType(contentType)
	}
	return h.Create(ctx, data)
}

func (r *Registry) Update(ctx context.Context, contentType, id string, data domain.Values) domain.ActionResult {
	h, ok := r.lookup(contentType)
	if !ok {
		return unknownType(contentType)
	}
	return h.Update(ctx, id, data)
}

func (r *Registry) Delete(ctx context.Context, contentType, id string) domain.ActionResult {
	h, ok := r.lookup(contentType)
	if !ok {
		return unknownType(contentType)
	}
	return h.Delete(ctx, id)
}

func unknownType(contentType string) domain.ActionResult {
	return domain.Failure(domain.CodeUnknownContentType, "Unknown content type",
		fmt.Sprintf("Unknown content type: %s", contentType))
}

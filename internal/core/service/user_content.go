package service

import (
	"context"

	"github.com/innsight/hotel-admin/internal/core/auth"
	"github.com/innsight/hotel-admin/internal/core/content"
	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/internal/core/forms"
)

// Content API bodies may name any known role, so the permission rules rather
// than the form's option list decide what an actor may grant.
var anyRoleField = forms.Field{
	Name:     "role",
	Type:     forms.TypeSelect,
	Label:    "Role",
	Rule:     "required",
	Messages: map[string]string{"oneof": "Invalid role selected"},
	Options:  roleOptions(domain.Roles()),
}

var (
	contentCreateSchema = forms.MustSchema(CreateUserFields.With(anyRoleField))
	contentPatchSchema  = forms.MustSchema(CreateUserFields.Omit("password").With(anyRoleField).Relaxed())
)

// UsersContent exposes UserService through the generic content dispatcher.
type UsersContent struct {
	users *UserService
	gate  *auth.Gate
}

var _ content.Handler = (*UsersContent)(nil)

func NewUsersContent(users *UserService, gate *auth.Gate) *UsersContent {
	return &UsersContent{users: users, gate: gate}
}

func (c *UsersContent) List(ctx context.Context, params domain.ListParams) (*domain.ListResult, error) {
	return c.users.List(ctx, params)
}

// Create authenticates before validating the body so an anonymous caller
// learns nothing about the payload.
func (c *UsersContent) Create(ctx context.Context, data domain.Values) domain.ActionResult {
	if res, ok := c.authorize(ctx, "create users"); !ok {
		return res
	}
	valid, errs := contentCreateSchema.Validate(data)
	if errs != nil {
		return domain.ValidationFailure(errs)
	}
	return c.users.Create(ctx, createInput(valid))
}

func (c *UsersContent) Update(ctx context.Context, id string, data domain.Values) domain.ActionResult {
	if res, ok := c.authorize(ctx, "update users"); !ok {
		return res
	}
	valid, errs := contentPatchSchema.Validate(data.Without("id"))
	if errs != nil {
		return domain.ValidationFailure(errs)
	}
	return c.users.Update(ctx, updateInput(id, valid))
}

func (c *UsersContent) Delete(ctx context.Context, id string) domain.ActionResult {
	return c.users.Delete(ctx, id)
}

func (c *UsersContent) authorize(ctx context.Context, action string) (domain.ActionResult, bool) {
	if _, err := c.gate.RequireMinRole(ctx, domain.RoleAdmin, auth.NoRedirect); err != nil {
		return c.users.gateFailure(err, action), false
	}
	return domain.ActionResult{}, true
}

func roleOptions(roles []domain.Role) []forms.Option {
	out := make([]forms.Option, len(roles))
	for i, r := range roles {
		out[i] = forms.Option{Value: string(r), Label: r.Label()}
	}
	return out
}

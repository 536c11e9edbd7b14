package service

import (
	"context"

	"github.com/innsight/hotel-admin/internal/core/auth"
	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/internal/core/forms"
	"github.com/innsight/hotel-admin/internal/core/ports"
)

// Form identifiers.
const (
	FormSetup      = "setup"
	FormCreateUser = "create-user"
	FormEditUser   = "edit-user"
)

// DeclaredForms lists every form identifier that must be registered.
var DeclaredForms = []string{FormSetup, FormCreateUser, FormEditUser}

// CreateUserFields is the create-user form.
var CreateUserFields = forms.Fields{
	{
		Name:        "email",
		Type:        forms.TypeEmail,
		Label:       "Email",
		Description: "Enter the user's email address",
		Placeholder: "user@example.com",
		Default:     "",
		Rule:        "required,email,max=254",
	},
	{
		Name:        "name",
		Type:        forms.TypeText,
		Label:       "Name",
		Description: "Optional display name",
		Placeholder: "Jane Doe",
		Default:     "",
		Rule:        "omitempty,max=100",
	},
	{
		Name:        "role",
		Type:        forms.TypeSelect,
		Label:       "Role",
		Description: "Select the user's role",
		Default:     string(domain.RoleFrontDesk),
		Rule:        "required",
		Messages:    map[string]string{"oneof": "Invalid role selected"},
		Options: []forms.Option{
			{Value: string(domain.RoleAdmin), Label: "Admin", Description: "Can create Front Desk and Housekeeping users"},
			{Value: string(domain.RoleFrontDesk), Label: "Front Desk", Description: "Manages check-ins and reservations"},
			{Value: string(domain.RoleHousekeeping), Label: "Housekeeping", Description: "Manages room cleaning and maintenance"},
		},
	},
	{
		Name:        "password",
		Type:        forms.TypePassword,
		Label:       "Password",
		Description: "Leave empty to generate a temporary password",
		Default:     "",
		Rule:        "omitempty,min=8,max=72",
		Messages:    map[string]string{"min": "Password must be at least 8 characters"},
	},
}

// EditUserFields is create-user without the password plus the record id.
var EditUserFields = CreateUserFields.Omit("password").With(forms.Field{
	Name:     "id",
	Type:     forms.TypeHidden,
	Label:    "User ID",
	Default:  "",
	Rule:     "required",
	Messages: map[string]string{"required": "User ID is required"},
})

var (
	createUserSchema = forms.MustSchema(CreateUserFields)
	editUserSchema   = forms.MustSchema(EditUserFields)
)

// UserFormEntries returns the create-user and edit-user form entries.
func UserFormEntries(users *UserService, finder ports.UserFinder, gate *auth.Gate) []forms.Entry {
	requireAdmin := func(ctx context.Context) error {
		_, err := gate.RequireMinRole(ctx, domain.RoleAdmin, auth.NoRedirect)
		return err
	}
	return []forms.Entry{
		{
			ID:     FormCreateUser,
			Fields: CreateUserFields,
			Schema: createUserSchema,
			Checks: forms.Checks{"email": forms.UniqueEmail(finder, "")},
			Access: requireAdmin,
			Action: func(ctx context.Context, data domain.Values) domain.ActionResult {
				return users.Create(ctx, createInput(data))
			},
		},
		{
			ID:     FormEditUser,
			Fields: EditUserFields,
			Schema: editUserSchema,
			Checks: forms.Checks{"email": forms.UniqueEmail(finder, "id")},
			Access: requireAdmin,
			Action: func(ctx context.Context, data domain.Values) domain.ActionResult {
				id, _ := data.String("id")
				return users.Update(ctx, updateInput(id, data))
			},
		},
	}
}

func createInput(data domain.Values) CreateUserInput {
	email, _ := data.String("email")
	name, _ := data.String("name")
	role, _ := data.String("role")
	password, _ := data.String("password")
	return CreateUserInput{Email: email, Name: name, Role: domain.Role(role), Password: password}
}

// updateInput keeps only the fields present in data. An empty name clears
// it; empty email or role values are ignored.
func updateInput(id string, data domain.Values) UpdateUserInput {
	in := UpdateUserInput{ID: id}
	if email, _ := data.String("email"); email != "" {
		in.Email = &email
	}
	if data.Has("name") {
		name, _ := data.String("name")
		in.Name = &name
	}
	if role, _ := data.String("role"); role != "" {
		r := domain.Role(role)
		in.Role = &r
	}
	return in
}

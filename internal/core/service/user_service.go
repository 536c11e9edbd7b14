package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/innsight/hotel-admin/internal/core/auth"
	"github.com/innsight/hotel-admin/internal/core/content"
	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/internal/core/ports"
)

const emailTakenMessage = "A user with this email already exists"

// CreateUserInput is the validated payload of a create request. An empty
// Password makes the service generate a temporary one.
type CreateUserInput struct {
	Email    string
	Name     string
	Role     domain.Role
	Password string
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	ID    string
	Email *string
	Name  *string
	Role  *domain.Role
}

// UserService owns every staff-account mutation and the authorization rules
// around it. Every method returns an ActionResult; errors never escape.
//
// Checks run in a fixed order: permission, existence, hierarchy protection,
// self protection, uniqueness, then the write itself.
type UserService struct {
	repo        ports.UserRepository
	gate        *auth.Gate
	hasher      ports.PasswordHasher
	revalidator ports.Revalidator
	logger      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, gate *auth.Gate, hasher ports.PasswordHasher, revalidator ports.Revalidator, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:        repo,
		gate:        gate,
		hasher:      hasher,
		revalidator: revalidator,
		logger:      logger,
	}
}

// List returns one page of users, newest first. Gate failures are returned
// as domain.ErrUnauthenticated or domain.ErrPermissionDenied.
func (s *UserService) List(ctx context.Context, params domain.ListParams) (*domain.ListResult, error) {
	if _, err := s.gate.RequireMinRole(ctx, domain.RoleAdmin, auth.NoRedirect); err != nil {
		return nil, err
	}

	params = params.Normalize()
	users, total, err := s.repo.List(ctx, domain.UserFilter{
		Search: strings.TrimSpace(params.SearchPhrase),
		Skip:   params.Skip(),
		Limit:  params.RowCount,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	rows := make([]domain.UserListItem, len(users))
	for i, u := range users {
		rows[i] = u.ListItem()
	}
	return &domain.ListResult{Rows: rows, Total: total}, nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) domain.ActionResult {
	actor, err := s.gate.RequireMinRole(ctx, domain.RoleAdmin, auth.NoRedirect)
	if err != nil {
		return s.gateFailure(err, "create users")
	}

	if !domain.CanAssign(actor.Role, in.Role) {
		return domain.Failure(domain.CodePermissionDenied, "Insufficient permissions",
			fmt.Sprintf("You cannot create users with the %s role.", in.Role))
	}

	email := normalizeEmail(in.Email)
	if res, taken := s.emailTaken(ctx, email, ""); taken {
		return res
	}

	password, generated := in.Password, false
	if password == "" {
		if password, err = tempPassword(); err != nil {
			s.logger.Error().Err(err).Msg("failed to generate temporary password")
			return domain.ServerFailure("Failed to create user. Please try again.")
		}
		generated = true
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return domain.ServerFailure("Failed to create user. Please try again.")
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrUserExists) {
		return domain.ValidationFailure(domain.FieldErrors{"email": emailTakenMessage})
	}
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create user")
		return domain.ServerFailure("Failed to create user. Please try again.")
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Str("actor_id", actor.UserID).Msg("user created")
	s.revalidator.Revalidate(ctx, content.Users)

	data := map[string]any{"user": created.ListItem()}
	desc := "User created successfully."
	if generated {
		data["tempPassword"] = password
		desc = "User created successfully. Temporary password: " + password
	}
	return domain.Success("User created", desc, data)
}

func (s *UserService) Update(ctx context.Context, in UpdateUserInput) domain.ActionResult {
	actor, err := s.gate.RequireMinRole(ctx, domain.RoleAdmin, auth.NoRedirect)
	if err != nil {
		return s.gateFailure(err, "update users")
	}

	target, err := s.repo.FindByID(ctx, in.ID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		s.logger.Error().Err(err).Str("user_id", in.ID).Msg("failed to load user for update")
		return domain.ServerFailure("Failed to update user. Please try again.")
	}

	// Role changes are judged before existence so the reported error does
	// not depend on whether the target exists.
	if in.Role != nil && (target == nil || *in.Role != target.Role) && !domain.CanAssign(actor.Role, *in.Role) {
		return domain.Failure(domain.CodePermissionDenied, "Insufficient permissions",
			fmt.Sprintf("You cannot assign the %s role.", *in.Role))
	}

	if target == nil {
		return domain.Failure(domain.CodeNotFound, "User not found",
			"The user you're trying to update doesn't exist.")
	}

	if actor.Role == domain.RoleAdmin && target.Role == domain.RoleSuperAdmin {
		return domain.Failure(domain.CodePermissionDenied, "Insufficient permissions",
			"Admins cannot update Super Admins.")
	}

	patch := domain.UserPatch{Name: trimmed(in.Name), Role: in.Role}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != target.Email {
			if res, taken := s.emailTaken(ctx, email, target.ID); taken {
				return res
			}
		}
		patch.Email = &email
	}

	if !patch.Empty() {
		err = s.repo.Update(ctx, target.ID, patch)
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return domain.ValidationFailure(domain.FieldErrors{"email": emailTakenMessage})
		case errors.Is(err, domain.ErrUserNotFound):
			return domain.Failure(domain.CodeNotFound, "User not found",
				"The user you're trying to update doesn't exist.")
		case err != nil:
			s.logger.Error().Err(err).Str("user_id", target.ID).Msg("failed to update user")
			return domain.ServerFailure("Failed to update user. Please try again.")
		}
	}

	s.logger.Info().Str("user_id", target.ID).Str("actor_id", actor.UserID).Msg("user updated")
	s.revalidator.Revalidate(ctx, content.Users)
	return domain.Success("User updated", "The user has been successfully updated.", nil)
}

func (s *UserService) Delete(ctx context.Context, id string) domain.ActionResult {
	actor, err := s.gate.RequireMinRole(ctx, domain.RoleAdmin, auth.NoRedirect)
	if err != nil {
		return s.gateFailure(err, "delete users")
	}

	target, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.Failure(domain.CodeNotFound, "User not found",
			"The user you're trying to delete doesn't exist.")
	}
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to load user for delete")
		return domain.ServerFailure("Failed to delete user. Please try again.")
	}

	if actor.Role == domain.RoleAdmin && target.Role == domain.RoleSuperAdmin {
		return domain.Failure(domain.CodePermissionDenied, "Insufficient permissions",
			"Admins cannot delete Super Admins.")
	}

	if target.ID == actor.UserID {
		return domain.Failure(domain.CodePermissionDenied, "Cannot delete yourself",
			"You cannot delete your own account.")
	}

	err = s.repo.Delete(ctx, target.ID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.Failure(domain.CodeNotFound, "User not found",
			"The user you're trying to delete doesn't exist.")
	}
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", target.ID).Msg("failed to delete user")
		return domain.ServerFailure("Failed to delete user. Please try again.")
	}

	s.logger.Info().Str("user_id", target.ID).Str("actor_id", actor.UserID).Msg("user deleted")
	s.revalidator.Revalidate(ctx, content.Users)
	return domain.Success("User deleted", "The user has been successfully deleted.", nil)
}

// emailTaken reports a field error when email belongs to a user other than
// excludeID. Store failures are reported as a server error.
func (s *UserService) emailTaken(ctx context.Context, email, excludeID string) (domain.ActionResult, bool) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ActionResult{}, false
	}
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to check email uniqueness")
		return domain.ServerFailure(""), true
	}
	if excludeID != "" && existing.ID == excludeID {
		return domain.ActionResult{}, false
	}
	return domain.ValidationFailure(domain.FieldErrors{"email": emailTakenMessage}), true
}

func (s *UserService) gateFailure(err error, action string) domain.ActionResult {
	if !errors.Is(err, domain.ErrUnauthenticated) && !errors.Is(err, domain.ErrPermissionDenied) {
		s.logger.Error().Err(err).Msg("failed to resolve session")
	}
	return auth.FailureResult(err, action)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// tempPassword returns a random 24-character URL-safe password.
func tempPassword() (string, error) {
	b := make([]byte, 18)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/innsight/hotel-admin/internal/core/content"
	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/internal/core/forms"
	"github.com/innsight/hotel-admin/internal/core/ports"
)

// SetupFields is the one-time super admin bootstrap form.
var SetupFields = forms.Fields{
	{
		Name:        "secret",
		Type:        forms.TypePassword,
		Label:       "Setup Secret",
		Placeholder: "Enter setup secret",
		Default:     "",
		Rule:        "required",
		Messages:    map[string]string{"required": "Setup secret is required"},
	},
	{
		Name:        "email",
		Type:        forms.TypeEmail,
		Label:       "Email",
		Placeholder: "admin@example.com",
		Default:     "",
		Rule:        "required,email,max=254",
	},
	{
		Name:        "password",
		Type:        forms.TypePassword,
		Label:       "Password",
		Placeholder: "Enter password",
		Default:     "",
		Rule:        "required,min=8,max=72",
		Messages: map[string]string{
			"required": "Password must be at least 8 characters",
			"min":      "Password must be at least 8 characters",
		},
	},
	{
		Name:        "confirmPassword",
		Type:        forms.TypePassword,
		Label:       "Confirm Password",
		Placeholder: "Confirm password",
		Default:     "",
		Rule:        "required",
		Messages:    map[string]string{"required": "Passwords don't match"},
	},
}

// SetupService creates the first super admin. It is reachable without a
// session and is guarded only by the configured secret.
type SetupService struct {
	repo        ports.UserRepository
	hasher      ports.PasswordHasher
	revalidator ports.Revalidator
	secret      string
	logger      zerolog.Logger
}

func NewSetupService(repo ports.UserRepository, hasher ports.PasswordHasher, revalidator ports.Revalidator, secret string, logger zerolog.Logger) *SetupService {
	return &SetupService{
		repo:        repo,
		hasher:      hasher,
		revalidator: revalidator,
		secret:      secret,
		logger:      logger,
	}
}

// Configured reports whether a setup secret is set.
func (s *SetupService) Configured() bool { return s.secret != "" }

func (s *SetupService) AdminExists(ctx context.Context) (bool, error) {
	exists, err := s.repo.ExistsWithRole(ctx, domain.RoleSuperAdmin)
	if err != nil {
		return false, fmt.Errorf("check super admin: %w", err)
	}
	return exists, nil
}

// ValidateSecret compares secret with the configured one for exact equality.
func (s *SetupService) ValidateSecret(secret string) error {
	if s.secret == "" {
		return domain.ErrSetupNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.secret)) != 1 {
		return domain.ErrInvalidSetupSecret
	}
	return nil
}

// CreateAdmin creates the super admin unless one already exists.
func (s *SetupService) CreateAdmin(ctx context.Context, email, password string) domain.ActionResult {
	exists, err := s.AdminExists(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("setup failed")
		return s.failed()
	}
	if exists {
		return alreadyExists()
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error().Err(err).Msg("setup failed to hash password")
		return s.failed()
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Email:        normalizeEmail(email),
		Role:         domain.RoleSuperAdmin,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrUserExists) {
		// A concurrent setup may have won the race on the super admin index.
		if exists, _ := s.AdminExists(ctx); exists {
			return alreadyExists()
		}
		return domain.ValidationFailure(domain.FieldErrors{"email": emailTakenMessage})
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("setup failed to create super admin")
		return s.failed()
	}

	s.logger.Info().Str("user_id", created.ID).Msg("super admin created")
	s.revalidator.Revalidate(ctx, content.Users)
	return domain.Success("Setup complete!",
		"Super admin account created successfully. You can now remove SETUP_SECRET from your environment variables and sign in.",
		map[string]any{"user": created.ListItem()})
}

// FormEntry returns the setup form.
func (s *SetupService) FormEntry() forms.Entry {
	return forms.Entry{
		ID:     FormSetup,
		Fields: SetupFields,
		Checks: forms.Checks{
			"secret":          forms.MatchesSecret(s.secret),
			"confirmPassword": forms.EqualsField("password", "Passwords don't match"),
		},
		Action: func(ctx context.Context, data domain.Values) domain.ActionResult {
			email, _ := data.String("email")
			password, _ := data.String("password")
			return s.CreateAdmin(ctx, email, password)
		},
	}
}

func (s *SetupService) failed() domain.ActionResult {
	r := domain.ServerFailure("An unexpected error occurred. Please try again.")
	r.Error.Title = "Failed to create admin account"
	r.Alert.Title = r.Error.Title
	return r
}

func alreadyExists() domain.ActionResult {
	return domain.Failure(domain.CodeAlreadyExists, "Super admin already exists",
		"A super admin account has already been created. Please remove SETUP_SECRET from your environment variables.")
}

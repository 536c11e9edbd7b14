package ports

import (
	"context"

	"github.com/innsight/hotel-admin/internal/core/domain"
)

// UserRepository defines persistence operations for staff accounts.
type UserRepository interface {
	// FindByID returns domain.ErrUserNotFound when no record matches.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsWithRole(ctx context.Context, role domain.Role) (bool, error)
	// List returns one page matching filter, newest first, and the filtered total.
	List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int64, error)
	// Create returns domain.ErrUserExists on a unique-key conflict.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) error
	Delete(ctx context.Context, id string) error
}

// UserFinder is the read-only slice of UserRepository used by validators.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

package ports

import (
	"context"

	"github.com/innsight/hotel-admin/internal/core/domain"
)

type AuthService interface {
	SignIn(ctx context.Context, email, password string) (string, *domain.User, error)
}

package ports

import (
	"context"

	"github.com/innsight/hotel-admin/internal/core/domain"
)

// SessionProvider resolves the caller's session. It returns (nil, nil) when
// the request carries no valid session.
type SessionProvider interface {
	CurrentSession(ctx context.Context) (*domain.Session, error)
}

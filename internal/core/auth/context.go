package auth

import (
	"context"

	"github.com/innsight/hotel-admin/internal/core/domain"
)

type sessionKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// ContextProvider is a SessionProvider reading the session the transport
// layer stored with WithSession.
type ContextProvider struct{}

func (ContextProvider) CurrentSession(ctx context.Context) (*domain.Session, error) {
	s, _ := ctx.Value(sessionKey{}).(*domain.Session)
	return s, nil
}

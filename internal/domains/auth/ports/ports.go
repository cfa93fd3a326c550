package ports

import (
	"context"
	"fmt"

	"github.com/Apurer/pizzeria-console/internal/domains/auth/domain"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// ErrNotFound is returned by SessionStore.Current when nobody is signed in.
var ErrNotFound = fmt.Errorf("session %w", result.ErrNotFound)

// IdentityProvider issues and checks user identities.
type IdentityProvider interface {
	Exists(ctx context.Context, uid string) (bool, error)
	CreateAnonymous(ctx context.Context) (string, error)
}

// SessionStore remembers the identity between runs.
type SessionStore interface {
	Current(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}

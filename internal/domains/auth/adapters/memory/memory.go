package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/pizzeria-console/internal/domains/auth/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/auth/ports"
)

// IdentityProvider hands out random user ids and remembers them.
type IdentityProvider struct {
	users sync.Map
}

func NewIdentityProvider() *IdentityProvider {
	return &IdentityProvider{}
}

var _ ports.IdentityProvider = (*IdentityProvider)(nil)

func (p *IdentityProvider) Exists(_ context.Context, uid string) (bool, error) {
	_, ok := p.users.Load(uid)
	return ok, nil
}

func (p *IdentityProvider) CreateAnonymous(_ context.Context) (string, error) {
	uid := uuid.NewString()
	p.users.Store(uid, struct{}{})
	return uid, nil
}

// Forget drops uid as if it had been deleted upstream.
func (p *IdentityProvider) Forget(uid string) {
	p.users.Delete(uid)
}

// SessionStore holds at most one session in memory.
type SessionStore struct {
	mu      sync.Mutex
	session domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

var _ ports.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) Current(_ context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.IsZero() {
		return domain.Session{}, ports.ErrNotFound
	}
	return s.session, nil
}

func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.session = domain.Session{}
	s.mu.Unlock()
	return nil
}

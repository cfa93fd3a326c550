package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Apurer/pizzeria-console/internal/domains/auth/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/auth/ports"
	"github.com/Apurer/pizzeria-console/internal/platform/deadline"
)

// DefaultTimeout bounds EnsureSession.
const DefaultTimeout = 10 * time.Second

// Option customises the Service.
type Option func(*Service)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service keeps the console signed in.
type Service struct {
	identities ports.IdentityProvider
	sessions   ports.SessionStore
	timeout    time.Duration
	now        func() time.Time
}

// NewService wires the auth service.
func NewService(identities ports.IdentityProvider, sessions ports.SessionStore, opts ...Option) *Service {
	s := &Service{identities: identities, sessions: sessions, timeout: DefaultTimeout, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureSession returns the stored identity when the provider still knows
// it and creates an anonymous one otherwise. Failures are not retried.
func (s *Service) EnsureSession(ctx context.Context) (domain.Session, error) {
	return deadline.Value(ctx, s.timeout, func(ctx context.Context) (domain.Session, error) {
		current, err := s.sessions.Current(ctx)
		switch {
		case errors.Is(err, ports.ErrNotFound):
		case err != nil:
			return domain.Session{}, fmt.Errorf("load session: %w", err)
		case !current.IsZero():
			known, err := s.identities.Exists(ctx, current.UserID)
			if err != nil {
				return domain.Session{}, fmt.Errorf("check identity: %w", err)
			}
			if known {
				return current, nil
			}
		}

		uid, err := s.identities.CreateAnonymous(ctx)
		if err != nil {
			return domain.Session{}, fmt.Errorf("create anonymous identity: %w", err)
		}
		session := domain.Session{UserID: uid, Anonymous: true, CreatedAt: s.now().UTC()}
		if err := s.sessions.Save(ctx, session); err != nil {
			return domain.Session{}, fmt.Errorf("store session: %w", err)
		}
		return session, nil
	})
}

// Ensure is EnsureSession for callers that only need a signed-in console.
func (s *Service) Ensure(ctx context.Context) error {
	_, err := s.EnsureSession(ctx)
	return err
}

// SignOut forgets the stored identity.
func (s *Service) SignOut(ctx context.Context) error {
	return deadline.Run(ctx, s.timeout, s.sessions.Clear)
}

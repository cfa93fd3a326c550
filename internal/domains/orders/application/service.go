package application

import (
	"context"
	"strings"
	"time"

	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	"github.com/Apurer/pizzeria-console/internal/platform/deadline"
)

// Timing holds the budgets of order operations.
type Timing struct {
	Timeout time.Duration
	// WriteDelay is waited after a save or delete so listeners of the
	// document store observe the change before the caller continues.
	WriteDelay time.Duration
}

// DefaultTiming returns the production budgets.
func DefaultTiming() Timing {
	return Timing{Timeout: 15 * time.Second, WriteDelay: 1500 * time.Millisecond}
}

// Option customises the Service.
type Option func(*Service)

// WithTiming overrides the default budgets.
func WithTiming(t Timing) Option {
	return func(s *Service) { s.timing = t }
}

// Service orchestrates order reads and writes against the order store.
type Service struct {
	repo   ports.Repository
	timing Timing
}

// NewService wires the order service with its repository.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, timing: DefaultTiming()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Service = (*Service)(nil)

// ListNew returns open orders, newest first.
func (s *Service) ListNew(ctx context.Context) ([]*domain.Order, error) {
	return s.list(ctx, false)
}

// ListCompleted returns closed orders, newest first.
func (s *Service) ListCompleted(ctx context.Context) ([]*domain.Order, error) {
	return s.list(ctx, true)
}

func (s *Service) list(ctx context.Context, completed bool) ([]*domain.Order, error) {
	return deadline.Value(ctx, s.timing.Timeout, func(ctx context.Context) ([]*domain.Order, error) {
		return s.repo.ListByCompletion(ctx, completed)
	})
}

// Get returns one order or ports.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ports.ErrNotFound
	}
	return deadline.Value(ctx, s.timing.Timeout, func(ctx context.Context) (*domain.Order, error) {
		return s.repo.Get(ctx, id)
	})
}

// Save writes order under its id.
func (s *Service) Save(ctx context.Context, order *domain.Order) error {
	return deadline.Run(ctx, s.timing.Timeout, func(ctx context.Context) error {
		if err := s.repo.Save(ctx, order); err != nil {
			return err
		}
		return deadline.Settle(ctx, s.timing.WriteDelay)
	})
}

// Delete removes the order with id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return deadline.Run(ctx, s.timing.Timeout, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		return deadline.Settle(ctx, s.timing.WriteDelay)
	})
}

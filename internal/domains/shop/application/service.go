package application

import (
	"context"
	"time"

	"github.com/Apurer/pizzeria-console/internal/domains/shop/ports"
	"github.com/Apurer/pizzeria-console/internal/platform/deadline"
)

// Timing holds the budgets of shop state calls.
type Timing struct {
	Read      time.Duration
	OpenWrite time.Duration
	OvenWrite time.Duration
}

// DefaultTiming returns the production budgets.
func DefaultTiming() Timing {
	return Timing{Read: 10 * time.Second, OpenWrite: 10 * time.Second, OvenWrite: 30 * time.Second}
}

// Option customises the Service.
type Option func(*Service)

// WithTiming overrides the default budgets.
func WithTiming(t Timing) Option {
	return func(s *Service) { s.timing = t }
}

// Service passes shop flag reads and writes through to the store.
type Service struct {
	store  ports.Store
	timing Timing
}

// NewService wires the shop service.
func NewService(store ports.Store, opts ...Option) *Service {
	s := &Service{store: store, timing: DefaultTiming()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type flag struct {
	value bool
	ok    bool
}

func (s *Service) read(ctx context.Context, get func(context.Context) (bool, bool, error)) (bool, bool, error) {
	f, err := deadline.Value(ctx, s.timing.Read, func(ctx context.Context) (flag, error) {
		v, ok, err := get(ctx)
		return flag{value: v, ok: ok}, err
	})
	return f.value, f.ok, err
}

// GetOpen reports whether the shop accepts orders; ok is false when the
// flag was never written.
func (s *Service) GetOpen(ctx context.Context) (open, ok bool, err error) {
	return s.read(ctx, s.store.Open)
}

// SetOpen stores the open flag.
func (s *Service) SetOpen(ctx context.Context, open bool) error {
	return deadline.Run(ctx, s.timing.OpenWrite, func(ctx context.Context) error {
		return s.store.SetOpen(ctx, open)
	})
}

// GetOvenHot reports whether the oven is ready; ok is false when the flag
// was never written.
func (s *Service) GetOvenHot(ctx context.Context) (hot, ok bool, err error) {
	return s.read(ctx, s.store.OvenHot)
}

// SetOvenHot stores the oven flag.
func (s *Service) SetOvenHot(ctx context.Context, hot bool) error {
	return deadline.Run(ctx, s.timing.OvenWrite, func(ctx context.Context) error {
		return s.store.SetOvenHot(ctx, hot)
	})
}

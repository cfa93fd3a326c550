package application

import (
	"context"
	"log/slog"

	"github.com/Apurer/pizzeria-console/internal/domains/rejections/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/rejections/ports"
	"github.com/Apurer/pizzeria-console/internal/platform/broadcast"
)

// Option customises the Service.
type Option func(*Service)

// WithLogger attaches a logger for degraded reads.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service manages rejection reason suggestions. Reads never fail: a broken
// cache yields no suggestions.
type Service struct {
	cache  ports.Cache
	logger *slog.Logger
}

// NewService wires the service over cache.
func NewService(cache ports.Cache, opts ...Option) *Service {
	s := &Service{cache: cache, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add saves a new reason.
func (s *Service) Add(ctx context.Context, text string) (domain.Reason, error) {
	reason, err := domain.NewReason(text)
	if err != nil {
		return domain.Reason{}, err
	}
	return s.cache.Upsert(ctx, reason)
}

// Delete removes the reason with id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.cache.Delete(ctx, id)
}

// ListOnce returns the saved reasons, or none when the cache fails.
func (s *Service) ListOnce(ctx context.Context) []domain.Reason {
	reasons, err := s.cache.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "list rejection reasons", slog.String("error", err.Error()))
		return []domain.Reason{}
	}
	if reasons == nil {
		reasons = []domain.Reason{}
	}
	return reasons
}

// ListLive streams the reason list until ctx ends. If the cache cannot be
// watched one empty list is sent instead.
func (s *Service) ListLive(ctx context.Context) <-chan []domain.Reason {
	out := make(chan []domain.Reason, 1)
	src, err := s.cache.Watch(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "watch rejection reasons", slog.String("error", err.Error()))
		out <- []domain.Reason{}
		go func() {
			<-ctx.Done()
			close(out)
		}()
		return out
	}
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case reasons, ok := <-src:
				if !ok {
					return
				}
				broadcast.Offer(out, reasons)
			}
		}
	}()
	return out
}

package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Apurer/pizzeria-console/internal/domains/notifications/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/notifications/ports"
	orderdomain "github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	orderports "github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	"github.com/Apurer/pizzeria-console/internal/platform/deadline"
)

// DefaultTimeout bounds a single sink write.
const DefaultTimeout = 15 * time.Second

// Option customises the Service.
type Option func(*Service)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service renders customer emails and writes them to the sink. Delivery
// after the write belongs to whatever consumes the sink; nothing is retried
// here.
type Service struct {
	renderer *domain.Renderer
	sink     ports.Sink
	validate *validator.Validate
	timeout  time.Duration
	logger   *slog.Logger
}

// NewService wires the notification service.
func NewService(renderer *domain.Renderer, sink ports.Sink, opts ...Option) *Service {
	s := &Service{
		renderer: renderer,
		sink:     sink,
		validate: validator.New(),
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ orderports.Notifier = (*Service)(nil)

// SendReceipt tells the customer their order arrived.
func (s *Service) SendReceipt(ctx context.Context, order *orderdomain.Order) error {
	return s.send(ctx, order, "receipt", s.renderer.Receipt)
}

// SendConfirmation tells the customer their order was accepted.
func (s *Service) SendConfirmation(ctx context.Context, order *orderdomain.Order) error {
	return s.send(ctx, order, "confirmation", s.renderer.Confirmation)
}

// SendRejection tells the customer their order was declined and why.
func (s *Service) SendRejection(ctx context.Context, order *orderdomain.Order, reason string) error {
	return s.send(ctx, order, "rejection", func(o *orderdomain.Order) (domain.Message, error) {
		return s.renderer.Rejection(o, reason)
	})
}

func (s *Service) send(ctx context.Context, order *orderdomain.Order, kind string, render func(*orderdomain.Order) (domain.Message, error)) error {
	if order == nil {
		return domain.ErrNoOrder
	}
	// The dispatcher owns delivery, so an odd address is still written.
	if err := s.validate.Var(strings.TrimSpace(order.ConsumerEmail), "required,email"); err != nil {
		s.logger.WarnContext(ctx, "writing email with a suspicious recipient",
			slog.String("kind", kind), slog.String("order_id", order.ID), slog.String("to", order.ConsumerEmail))
	}
	msg, err := render(order)
	if err != nil {
		return err
	}
	err = deadline.Run(ctx, s.timeout, func(ctx context.Context) error {
		return s.sink.Write(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("write %s email: %w", kind, err)
	}
	s.logger.DebugContext(ctx, "email queued", slog.String("kind", kind), slog.String("order_id", order.ID))
	return nil
}

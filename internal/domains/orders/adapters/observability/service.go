package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	ordersports "github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/pizzeria-console/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) ListNew(ctx context.Context) ([]*ordersdomain.Order, error) {
	return s.list(ctx, "OrderService.ListNew", false, s.inner.ListNew)
}

func (s *Service) ListCompleted(ctx context.Context) ([]*ordersdomain.Order, error) {
	return s.list(ctx, "OrderService.ListCompleted", true, s.inner.ListCompleted)
}

func (s *Service) list(ctx context.Context, name string, completed bool, fn func(context.Context) ([]*ordersdomain.Order, error)) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, name, trace.WithAttributes(attribute.Bool("order.completed", completed)))
	defer span.End()

	orders, err := fn(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.Bool("completed", completed))
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	s.logInfo(ctx, "orders listed", slog.Bool("completed", completed), slog.Int("count", len(orders)))
	return orders, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return order, nil
}

func (s *Service) Save(ctx context.Context, order *ordersdomain.Order) error {
	state := string(order.State())
	ctx, span := s.tracer.Start(ctx, "OrderService.Save",
		trace.WithAttributes(attribute.String("order.id", order.ID), attribute.String("order.state", state)))
	defer span.End()

	s.logInfo(ctx, "saving order", slog.String("order.id", order.ID), slog.String("state", state))
	if err := s.inner.Save(ctx, order); err != nil {
		s.metrics.recordFailure(ctx, "save")
		return s.handleError(ctx, span, err, "failed to save order", slog.String("order.id", order.ID))
	}
	s.metrics.recordSaved(ctx, state)
	s.logInfo(ctx, "order saved", slog.String("order.id", order.ID), slog.String("state", state))
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("order.id", id))
	if err := s.inner.Delete(ctx, id); err != nil {
		s.metrics.recordFailure(ctx, "delete")
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("order.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.String("order.id", id))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersSaved   metric.Int64Counter
	ordersDeleted metric.Int64Counter
	failures      metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersSaved, _ := m.Int64Counter("orders.service.orders_saved", metric.WithDescription("Number of order writes"))
	ordersDeleted, _ := m.Int64Counter("orders.service.orders_deleted", metric.WithDescription("Number of orders deleted"))
	failures, _ := m.Int64Counter("orders.service.failures", metric.WithDescription("Number of failed order writes"))
	return serviceMetrics{ordersSaved: ordersSaved, ordersDeleted: ordersDeleted, failures: failures}
}

func (m serviceMetrics) recordSaved(ctx context.Context, state string) {
	if m.ordersSaved != nil {
		m.ordersSaved.Add(ctx, 1, metric.WithAttributes(attribute.String("order.state", state)))
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.ordersDeleted != nil {
		m.ordersDeleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordFailure(ctx context.Context, op string) {
	if m.failures != nil {
		m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	}
}

var _ ordersports.Service = (*Service)(nil)

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

	menudomain "github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
	menuports "github.com/Apurer/pizzeria-console/internal/domains/menu/ports"
)

const tracerName = "github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/observability/service"

// Service decorates the menu service with tracing, logging, and metrics.
type Service struct {
	inner   menuports.Service
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

// New wraps the core menu service.
func New(inner menuports.Service, opts ...Option) menuports.Service {
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

func (s *Service) ListItems(ctx context.Context) ([]*menudomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.ListItems")
	defer span.End()

	items, err := s.inner.ListItems(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list menu")
	}
	span.SetAttributes(attribute.Int("menu.items", len(items)))
	s.logInfo(ctx, "menu listed", slog.Int("count", len(items)))
	return items, nil
}

func (s *Service) GetItem(ctx context.Context, id string) (*menudomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.GetItem", trace.WithAttributes(attribute.String("item.id", id)))
	defer span.End()

	item, err := s.inner.GetItem(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load menu item", slog.String("item.id", id))
	}
	return item, nil
}

func (s *Service) Save(ctx context.Context, item *menudomain.Item) (*menudomain.Item, error) {
	upload := item.NeedsUpload()
	ctx, span := s.tracer.Start(ctx, "MenuService.Save",
		trace.WithAttributes(attribute.String("item.id", item.ID), attribute.Bool("item.photo_upload", upload)))
	defer span.End()

	s.logInfo(ctx, "saving menu item", slog.String("item.id", item.ID), slog.Bool("photo_upload", upload))
	saved, err := s.inner.Save(ctx, item)
	if err != nil {
		s.metrics.recordFailure(ctx, "save")
		return nil, s.handleError(ctx, span, err, "failed to save menu item", slog.String("item.id", item.ID))
	}
	s.metrics.recordSaved(ctx, upload)
	s.logInfo(ctx, "menu item saved", slog.String("item.id", saved.ID), slog.Bool("available", saved.IsAvailable))
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "MenuService.Delete", trace.WithAttributes(attribute.String("item.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting menu item", slog.String("item.id", id))
	if err := s.inner.Delete(ctx, id); err != nil {
		s.metrics.recordFailure(ctx, "delete")
		return s.handleError(ctx, span, err, "failed to delete menu item", slog.String("item.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "menu item deleted", slog.String("item.id", id))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	itemsSaved   metric.Int64Counter
	itemsDeleted metric.Int64Counter
	failures     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsSaved, _ := m.Int64Counter("menu.service.items_saved", metric.WithDescription("Number of menu items saved"))
	itemsDeleted, _ := m.Int64Counter("menu.service.items_deleted", metric.WithDescription("Number of menu items deleted"))
	failures, _ := m.Int64Counter("menu.service.failures", metric.WithDescription("Number of failed menu writes"))
	return serviceMetrics{itemsSaved: itemsSaved, itemsDeleted: itemsDeleted, failures: failures}
}

func (m serviceMetrics) recordSaved(ctx context.Context, upload bool) {
	if m.itemsSaved != nil {
		m.itemsSaved.Add(ctx, 1, metric.WithAttributes(attribute.Bool("photo_upload", upload)))
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.itemsDeleted != nil {
		m.itemsDeleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordFailure(ctx context.Context, op string) {
	if m.failures != nil {
		m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	}
}

var _ menuports.Service = (*Service)(nil)

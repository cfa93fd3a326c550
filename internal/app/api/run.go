package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	menuapp "github.com/Apurer/pizzeria-console/internal/domains/menu/application"
	ordersworkflows "github.com/Apurer/pizzeria-console/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/pizzeria-console/internal/domains/orders/application"
	ordersports "github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	shopapp "github.com/Apurer/pizzeria-console/internal/domains/shop/application"
	platformobservability "github.com/Apurer/pizzeria-console/internal/platform/observability"
	consoleserver "github.com/Apurer/pizzeria-console/server"
)

const shutdownTimeout = 5 * time.Second

// Run boots the staff console HTTP API with observability, adapters, and
// workflows wired. It returns when ctx ends or the server fails.
func Run(ctx context.Context) error {
	const serviceName = "pizzeria-console-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, cfg.ObservabilityOptions())
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	components, cleanup, err := Wire(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	var transitions ordersports.TransitionRunner = ordersapp.NewTransitioner(components.Orders, components.Notifier)
	if temporalClient, err := ConnectTemporalClient(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, running order transitions inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		transitions = ordersworkflows.NewTemporalTransitions(temporalClient, cfg.TemporalTaskQueue)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace), slog.String("taskQueue", cfg.TemporalTaskQueue))
	}

	handlers := consoleserver.Handlers{
		Session: consoleserver.NewSessionAPI(components.Auth),
		Shop:    consoleserver.NewShopAPI(shopapp.NewDashboard(components.Shop, components.Auth)),
		Menu: consoleserver.NewMenuAPI(
			menuapp.NewScreen(components.Menu),
			menuapp.NewEditor(components.Menu),
			components.Photos,
		),
		Orders: consoleserver.NewOrderAPI(
			components.Orders,
			ordersapp.NewOrchestrator(components.Orders, transitions),
			ordersapp.NewEditor(components.Orders, components.Menu, cfg.Location),
			components.Notifier,
		),
		Reasons: consoleserver.NewReasonAPI(components.Reasons),
	}
	router := consoleserver.NewRouter(handlers, otelgin.Middleware(serviceName))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("staff console API listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("staff console API exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("staff console API shutting down")
	return srv.Shutdown(shutdownCtx)
}

// ObservabilityOptions maps the logging settings.
func (c Config) ObservabilityOptions() platformobservability.Options {
	return platformobservability.Options{
		Environment: c.Environment,
		LogLevel:    c.LogLevel,
		LogFile:     c.LogFile,
	}
}

// ConnectTemporalClient dials Temporal with tracing and structured logging.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer(tracerName)
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

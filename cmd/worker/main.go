package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pizzeria-console/internal/app/api"
	orderactivities "github.com/Apurer/pizzeria-console/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/Apurer/pizzeria-console/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/Apurer/pizzeria-console/internal/platform/observability"
)

func main() {
	ctx := context.Background()
	const serviceName = "pizzeria-console-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, cfg.ObservabilityOptions())
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	components, cleanup, err := api.Wire(ctx, cfg, instruments)
	if err != nil {
		logger.Error("failed to wire adapters", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()
	orderActivities := orderactivities.NewActivities(components.Orders, components.Notifier)

	cfg.TemporalDisabled = false
	temporalClient, err := api.ConnectTemporalClient(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, cfg.TemporalTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderTransitionWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderTransitionWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})
	w.RegisterActivityWithOptions(orderActivities.NotifyCustomer, activity.RegisterOptions{Name: orderactivities.NotifyCustomerActivityName})

	logger.Info("worker listening", slog.String("taskQueue", cfg.TemporalTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/pizzeria-console/internal/domains/orders/application"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	"github.com/Apurer/pizzeria-console/internal/durable/temporal/sequences"
	orderworkflows "github.com/Apurer/pizzeria-console/internal/durable/temporal/workflows/orders"
)

var _ ports.TransitionRunner = (*TemporalTransitions)(nil)

// ErrTransitionInFlight is returned when the same transition was already
// started for the request's trace.
var ErrTransitionInFlight = errors.New("order transition already running")

// TemporalTransitions runs order transitions as Temporal workflows and waits
// for their result.
type TemporalTransitions struct {
	client    client.Client
	taskQueue string
}

// NewTemporalTransitions wires a Temporal client into the runner. An empty
// taskQueue selects the default queue.
func NewTemporalTransitions(c client.Client, taskQueue string) *TemporalTransitions {
	if taskQueue == "" {
		taskQueue = orderworkflows.OrderTransitionTaskQueue
	}
	return &TemporalTransitions{client: c, taskQueue: taskQueue}
}

// Run implements ports.TransitionRunner.
func (t *TemporalTransitions) Run(ctx context.Context, cmd ports.TransitionCommand) (*domain.Order, error) {
	if t == nil || t.client == nil {
		return nil, errors.New("temporal order transitions not configured")
	}
	if cmd.Order == nil {
		return nil, errors.New("order is nil")
	}
	traceID := workflowTraceID(ctx)
	options := client.StartWorkflowOptions{
		ID:        buildTransitionWorkflowID(cmd, traceID),
		TaskQueue: t.taskQueue,

		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	run, err := t.client.ExecuteWorkflow(ctx, options, orderworkflows.OrderTransitionWorkflowName,
		orderworkflows.OrderTransitionWorkflowInput{Command: cmd, TraceID: traceID})
	if err != nil {
		return nil, mapStartError(err)
	}
	var updated domain.Order
	if err := run.Get(ctx, &updated); err != nil {
		return nil, mapWorkflowError(err)
	}
	return &updated, nil
}

// mapWorkflowError keeps the committed-but-not-notified outcome recognisable.
func mapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == sequences.NotificationFailedErrorType {
		return fmt.Errorf("%w: %w", ordersapp.ErrNotificationFailed, err)
	}
	return err
}

func mapStartError(err error) error {
	var started *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &started) {
		return fmt.Errorf("%w: %w", ErrTransitionInFlight, err)
	}
	return err
}

func buildTransitionWorkflowID(cmd ports.TransitionCommand, traceID string) string {
	suffix := traceID
	if suffix == "" {
		suffix = fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("order-%s-%s-%s", cmd.Kind, cmd.Order.ID, suffix)
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}

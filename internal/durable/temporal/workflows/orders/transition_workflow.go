package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	ordersports "github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	"github.com/Apurer/pizzeria-console/internal/durable/temporal/sequences"
)

const (
	// OrderTransitionWorkflowName is the public identifier for registering the workflow.
	OrderTransitionWorkflowName = "orders.workflows.Transition"
	// OrderTransitionTaskQueue is the default queue consumed by the worker.
	OrderTransitionTaskQueue = "ORDER_TRANSITIONS"
)

// OrderTransitionWorkflowInput carries one state change.
type OrderTransitionWorkflowInput struct {
	Command ordersports.TransitionCommand
	TraceID string
}

// OrderTransitionWorkflow moves an order to its next state and emails the customer.
func OrderTransitionWorkflow(ctx workflow.Context, input OrderTransitionWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	var orderID string
	if input.Command.Order != nil {
		orderID = input.Command.Order.ID
	}
	logger.Info("OrderTransitionWorkflow started", withTraceID(input.TraceID, "orderId", orderID, "kind", string(input.Command.Kind))...)
	updated, err := sequences.RunOrderTransitionSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderTransitionWorkflow failed", withTraceID(input.TraceID, "orderId", orderID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderTransitionWorkflow completed", withTraceID(input.TraceID, "orderId", updated.ID)...)
	return updated, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}

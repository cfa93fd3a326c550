package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordersapp "github.com/Apurer/pizzeria-console/internal/domains/orders/application"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	ordersports "github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/pizzeria-console/internal/durable/temporal/activities/orders"
)

// NotificationFailedErrorType marks a workflow failure whose order change was
// already persisted.
const NotificationFailedErrorType = "NotificationFailed"

// RunOrderTransitionSequence applies the transition, persists the result and
// then notifies the customer. Activities run exactly once: a failed step is
// surfaced to the caller rather than retried.
func RunOrderTransitionSequence(ctx workflow.Context, cmd ordersports.TransitionCommand) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	updated, err := ordersapp.Apply(cmd)
	if err != nil {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), "InvalidTransition", err)
	}
	logger.Info("order transition sequence started", "orderId", updated.ID, "kind", string(cmd.Kind))

	options := workflow.ActivityOptions{
		StartToCloseTimeout: 15 * time.Second,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	if err := workflow.ExecuteActivity(ctx, orderactivities.PersistOrderActivityName, updated).Get(ctx, nil); err != nil {
		logger.Error("order transition persist failed", "orderId", updated.ID, "error", err)
		return nil, err
	}
	if err := workflow.ExecuteActivity(ctx, orderactivities.NotifyCustomerActivityName, cmd).Get(ctx, nil); err != nil {
		logger.Error("order transition notify failed", "orderId", updated.ID, "error", err)
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), NotificationFailedErrorType, err)
	}
	logger.Info("order transition sequence completed", "orderId", updated.ID, "state", string(updated.State()))
	return updated, nil
}

package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	ordersports "github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/pizzeria-console/internal/durable/temporal/activities/orders"
)

type savingOrders struct {
	ordersports.Service
	saved []*domain.Order
}

func (s *savingOrders) Save(_ context.Context, order *domain.Order) error {
	s.saved = append(s.saved, order)
	return nil
}

type countingNotifier struct {
	confirmations []*domain.Order
	rejections    []string
	fail          error
}

func (n *countingNotifier) SendConfirmation(_ context.Context, order *domain.Order) error {
	n.confirmations = append(n.confirmations, order)
	return n.fail
}

func (n *countingNotifier) SendRejection(_ context.Context, _ *domain.Order, reason string) error {
	n.rejections = append(n.rejections, reason)
	return n.fail
}

func newEnv(t *testing.T, orders *savingOrders, notifier *countingNotifier) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	acts := orderactivities.NewActivities(orders, notifier)
	env.RegisterActivityWithOptions(acts.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})
	env.RegisterActivityWithOptions(acts.NotifyCustomer, activity.RegisterOptions{Name: orderactivities.NotifyCustomerActivityName})
	return env
}

func TestOrderTransitionWorkflowConfirm(t *testing.T) {
	orders, notifier := &savingOrders{}, &countingNotifier{}
	env := newEnv(t, orders, notifier)

	input := OrderTransitionWorkflowInput{Command: ordersports.TransitionCommand{
		Kind:  ordersports.TransitionConfirm,
		Order: &domain.Order{ID: "o1", ConsumerEmail: "anna@example.com"},
	}}
	env.ExecuteWorkflow(OrderTransitionWorkflow, input)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var updated domain.Order
	require.NoError(t, env.GetWorkflowResult(&updated))
	require.Equal(t, domain.StateConfirmed, updated.State())

	require.Len(t, orders.saved, 1)
	require.True(t, orders.saved[0].IsConfirmed)
	require.Len(t, notifier.confirmations, 1)
	require.False(t, notifier.confirmations[0].IsConfirmed, "email built from the snapshot")
}

func TestOrderTransitionWorkflowNotifyFailureIsNotRetried(t *testing.T) {
	orders, notifier := &savingOrders{}, &countingNotifier{fail: errors.New("sink down")}
	env := newEnv(t, orders, notifier)

	env.ExecuteWorkflow(OrderTransitionWorkflow, OrderTransitionWorkflowInput{Command: ordersports.TransitionCommand{
		Kind:   ordersports.TransitionReject,
		Order:  &domain.Order{ID: "o2"},
		Reason: "Закончилось тесто",
	}})

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	require.Len(t, orders.saved, 1, "persist committed before the failed email")
	require.Len(t, notifier.rejections, 1)
}

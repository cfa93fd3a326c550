package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	ordersapp "github.com/Apurer/pizzeria-console/internal/domains/orders/application"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	ordersports "github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
)

const (
	// PersistOrderActivityName writes the transitioned order.
	PersistOrderActivityName = "orders.activities.PersistOrder"
	// NotifyCustomerActivityName writes the confirmation or rejection email.
	NotifyCustomerActivityName = "orders.activities.NotifyCustomer"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	orders   ordersports.Service
	notifier ordersports.Notifier
}

// NewActivities wires the orders collaborators into the Temporal activities bundle.
func NewActivities(orders ordersports.Service, notifier ordersports.Notifier) *Activities {
	return &Activities{orders: orders, notifier: notifier}
}

// PersistOrder stores order.
func (a *Activities) PersistOrder(ctx context.Context, order *domain.Order) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.orders == nil {
		return errors.New("order persist activity not initialized")
	}
	if order == nil {
		return errors.New("order is nil")
	}
	logger.Info("PersistOrder activity started", "orderId", order.ID, "state", string(order.State()))
	if err := a.orders.Save(ctx, order); err != nil {
		logger.Error("PersistOrder activity failed", "orderId", order.ID, "error", err)
		return err
	}
	logger.Info("PersistOrder activity completed", "orderId", order.ID)
	return nil
}

// NotifyCustomer sends the email of cmd, rendered from the pre-change snapshot.
func (a *Activities) NotifyCustomer(ctx context.Context, cmd ordersports.TransitionCommand) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.notifier == nil {
		return errors.New("order notify activity not initialized")
	}
	if cmd.Order == nil {
		return errors.New("order is nil")
	}
	logger.Info("NotifyCustomer activity started", "orderId", cmd.Order.ID, "kind", string(cmd.Kind))
	if err := ordersapp.Notify(ctx, a.notifier, cmd); err != nil {
		logger.Error("NotifyCustomer activity failed", "orderId", cmd.Order.ID, "error", err)
		return err
	}
	logger.Info("NotifyCustomer activity completed", "orderId", cmd.Order.ID)
	return nil
}

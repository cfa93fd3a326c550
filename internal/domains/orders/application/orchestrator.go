package application

import (
	"context"

	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// Orchestrator drives the order board. Each call takes the list the caller
// currently holds and returns the list to keep; the caller is the single
// writer of that list. Nothing guards against another client changing the
// same order concurrently.
type Orchestrator struct {
	orders ports.Service
	runner ports.TransitionRunner
}

// NewOrchestrator builds an Orchestrator.
func NewOrchestrator(orders ports.Service, runner ports.TransitionRunner) *Orchestrator {
	return &Orchestrator{orders: orders, runner: runner}
}

// ListNew loads open orders.
func (o *Orchestrator) ListNew(ctx context.Context) result.Result[[]*domain.Order] {
	return result.From(o.orders.ListNew(ctx))
}

// ListCompleted loads closed orders.
func (o *Orchestrator) ListCompleted(ctx context.Context) result.Result[[]*domain.Order] {
	return result.From(o.orders.ListCompleted(ctx))
}

// MarkCompleted closes order without notifying the customer.
func (o *Orchestrator) MarkCompleted(ctx context.Context, order *domain.Order, held []*domain.Order) result.Result[[]*domain.Order] {
	return o.transition(ctx, ports.TransitionCommand{Kind: ports.TransitionComplete, Order: order}, held)
}

// MarkNew reopens order without notifying the customer.
func (o *Orchestrator) MarkNew(ctx context.Context, order *domain.Order, held []*domain.Order) result.Result[[]*domain.Order] {
	return o.transition(ctx, ports.TransitionCommand{Kind: ports.TransitionReopen, Order: order}, held)
}

// Confirm accepts order and emails the customer.
func (o *Orchestrator) Confirm(ctx context.Context, order *domain.Order, held []*domain.Order) result.Result[[]*domain.Order] {
	return o.transition(ctx, ports.TransitionCommand{Kind: ports.TransitionConfirm, Order: order}, held)
}

// Reject declines order and emails the customer the reason.
func (o *Orchestrator) Reject(ctx context.Context, order *domain.Order, reason string, held []*domain.Order) result.Result[[]*domain.Order] {
	return o.transition(ctx, ports.TransitionCommand{Kind: ports.TransitionReject, Order: order, Reason: reason}, held)
}

// Delete removes the order and drops it from held.
func (o *Orchestrator) Delete(ctx context.Context, id string, held []*domain.Order) result.Result[[]*domain.Order] {
	if err := o.orders.Delete(ctx, id); err != nil {
		return result.Fail[[]*domain.Order](err)
	}
	return result.OK(domain.Without(held, id))
}

func (o *Orchestrator) transition(ctx context.Context, cmd ports.TransitionCommand, held []*domain.Order) result.Result[[]*domain.Order] {
	cmd.Order = cmd.Order.Clone()
	updated, err := o.runner.Run(ctx, cmd)
	if err != nil {
		return result.Fail[[]*domain.Order](err)
	}
	return result.OK(domain.Replace(held, updated))
}

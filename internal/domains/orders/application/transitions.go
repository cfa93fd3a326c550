package application

import (
	"context"
	"fmt"

	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
)

// Apply computes the order produced by cmd without any I/O.
func Apply(cmd ports.TransitionCommand) (*domain.Order, error) {
	if cmd.Order == nil {
		return nil, fmt.Errorf("%w: missing order", ErrUnknownTransition)
	}
	switch cmd.Kind {
	case ports.TransitionComplete:
		return cmd.Order.MarkCompleted(), nil
	case ports.TransitionReopen:
		return cmd.Order.MarkNew(), nil
	case ports.TransitionConfirm:
		return cmd.Order.Confirm(), nil
	case ports.TransitionReject:
		return cmd.Order.Reject(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransition, cmd.Kind)
	}
}

// Transitioner runs transitions in-process: persist the new state, then
// notify the customer from the pre-change snapshot. The two steps are not
// atomic; a failed notification after a successful persist is reported as
// ErrNotificationFailed and the stored change stays.
type Transitioner struct {
	orders   ports.Service
	notifier ports.Notifier
}

// NewTransitioner builds a Transitioner.
func NewTransitioner(orders ports.Service, notifier ports.Notifier) *Transitioner {
	return &Transitioner{orders: orders, notifier: notifier}
}

var _ ports.TransitionRunner = (*Transitioner)(nil)

// Run implements ports.TransitionRunner.
func (t *Transitioner) Run(ctx context.Context, cmd ports.TransitionCommand) (*domain.Order, error) {
	updated, err := Apply(cmd)
	if err != nil {
		return nil, err
	}
	if err := t.orders.Save(ctx, updated); err != nil {
		return nil, err
	}
	if err := Notify(ctx, t.notifier, cmd); err != nil {
		return nil, err
	}
	return updated, nil
}

// Notify sends the email belonging to cmd, if any.
func Notify(ctx context.Context, notifier ports.Notifier, cmd ports.TransitionCommand) error {
	var err error
	switch cmd.Kind {
	case ports.TransitionConfirm:
		err = notifier.SendConfirmation(ctx, cmd.Order)
	case ports.TransitionReject:
		err = notifier.SendRejection(ctx, cmd.Order, cmd.Reason)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}
	return nil
}

package ports

import (
	"context"

	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
)

// TransitionKind names an order state change.
type TransitionKind string

const (
	TransitionComplete TransitionKind = "complete"
	TransitionReopen   TransitionKind = "reopen"
	TransitionConfirm  TransitionKind = "confirm"
	TransitionReject   TransitionKind = "reject"
)

// TransitionCommand asks for one state change. Order is the snapshot taken
// before the change; emails are rendered from it.
type TransitionCommand struct {
	Kind   TransitionKind
	Order  *domain.Order
	Reason string
}

// TransitionRunner persists a transition and sends its notification, either
// inline or through a durable workflow engine.
type TransitionRunner interface {
	Run(ctx context.Context, cmd TransitionCommand) (*domain.Order, error)
}

package ports

import (
	"context"

	menudomain "github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
)

// Service exposes order use cases to orchestrators and adapters.
type Service interface {
	ListNew(ctx context.Context) ([]*domain.Order, error)
	ListCompleted(ctx context.Context) ([]*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
}

// Notifier sends customer emails about an order.
type Notifier interface {
	SendConfirmation(ctx context.Context, order *domain.Order) error
	SendRejection(ctx context.Context, order *domain.Order, reason string) error
}

// MenuCatalog lists the items an order can be edited with.
type MenuCatalog interface {
	ListItems(ctx context.Context) ([]*menudomain.Item, error)
}

package ports

import (
	"context"

	"github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
)

// Service exposes menu use cases to orchestrators and adapters.
type Service interface {
	ListItems(ctx context.Context) ([]*domain.Item, error)
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	Save(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, id string) error
}

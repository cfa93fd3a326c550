package ports

import (
	"context"
	"fmt"

	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

var ErrNotFound = fmt.Errorf("order %w", result.ErrNotFound)

// Repository persists orders.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	// ListByCompletion returns orders whose completed flag equals completed,
	// newest time first.
	ListByCompletion(ctx context.Context, completed bool) ([]*domain.Order, error)
}

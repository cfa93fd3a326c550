package ports

import (
	"context"
	"fmt"
	"io"

	"github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

var ErrNotFound = fmt.Errorf("menu item %w", result.ErrNotFound)

// Repository persists menu items.
type Repository interface {
	List(ctx context.Context) ([]*domain.Item, error)
	Get(ctx context.Context, id string) (*domain.Item, error)
	Save(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id string) error
}

// PhotoStore is the remote blob store holding item pictures. Deleting a
// missing blob succeeds.
type PhotoStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// PhotoSource opens pending local pictures by reference.
type PhotoSource interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

package ports

import (
	"context"

	"github.com/Apurer/pizzeria-console/internal/domains/rejections/domain"
)

// Cache is the device-local store of rejection reasons.
type Cache interface {
	// Upsert inserts a new reason (assigning its id) or replaces one.
	Upsert(ctx context.Context, reason domain.Reason) (domain.Reason, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Reason, error)
	// Watch emits the current list and then every later change until ctx
	// ends. Only the newest undelivered list is kept.
	Watch(ctx context.Context) (<-chan []domain.Reason, error)
}

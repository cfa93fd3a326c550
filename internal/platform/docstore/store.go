// Package docstore abstracts the remote document database shared by the
// orders, menu, shop-state and mail collections.
package docstore

import (
	"context"
	"fmt"

	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// Collection names used by the console.
const (
	CollectionOrders = "order"
	CollectionMenu   = "pizza"
	CollectionShop   = "main"
	CollectionOven   = "oven"
	CollectionMail   = "mail"
)

// ErrNotFound is returned by Get when the document does not exist.
var ErrNotFound = fmt.Errorf("document %w", result.ErrNotFound)

// Document is a single stored record.
type Document interface {
	ID() string
	DataTo(dest any) error
}

// Filter is an equality predicate on a top-level field.
type Filter struct {
	Field string
	Value any
}

// Query narrows and orders a collection scan.
type Query struct {
	Where      []Filter
	OrderBy    string
	Descending bool
}

// Store is implemented by every document backend.
type Store interface {
	Set(ctx context.Context, collection, id string, data any) error
	Get(ctx context.Context, collection, id string) (Document, error)
	Delete(ctx context.Context, collection, id string) error
	Find(ctx context.Context, collection string, query Query) ([]Document, error)
}

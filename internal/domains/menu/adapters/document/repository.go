// Package document stores menu items in the remote document store.
package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/menu/ports"
	"github.com/Apurer/pizzeria-console/internal/platform/docstore"
)

// Repository maps items onto the pizza collection.
type Repository struct {
	store docstore.Store
}

// NewRepository builds a Repository over store.
func NewRepository(store docstore.Store) *Repository {
	return &Repository{store: store}
}

var _ ports.Repository = (*Repository)(nil)

type itemRecord struct {
	ID          string  `firestore:"id" bson:"id" json:"id"`
	Name        string  `firestore:"name" bson:"name" json:"name"`
	Price       float64 `firestore:"price" bson:"price" json:"price"`
	Description string  `firestore:"description" bson:"description" json:"description"`
	PhotoURI    *string `firestore:"photoUri" bson:"photoUri" json:"photoUri"`
	Available   *bool   `firestore:"available" bson:"available" json:"available"`
}

// List implements ports.Repository.
func (r *Repository) List(ctx context.Context) ([]*domain.Item, error) {
	docs, err := r.store.Find(ctx, docstore.CollectionMenu, docstore.Query{})
	if err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(docs))
	for _, doc := range docs {
		item, err := decode(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Get implements ports.Repository.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Item, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionMenu, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(doc)
}

// Save implements ports.Repository.
func (r *Repository) Save(ctx context.Context, item *domain.Item) error {
	return r.store.Set(ctx, docstore.CollectionMenu, item.ID, toRecord(item))
}

// Delete implements ports.Repository.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, docstore.CollectionMenu, id)
}

func decode(doc docstore.Document) (*domain.Item, error) {
	var rec itemRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("decode menu item %s: %w", doc.ID(), err)
	}
	if rec.ID == "" {
		rec.ID = doc.ID()
	}
	return toDomain(rec), nil
}

func toRecord(item *domain.Item) itemRecord {
	price, _ := item.Price.Float64()
	available := item.IsAvailable
	rec := itemRecord{
		ID:          item.ID,
		Name:        item.Name,
		Price:       price,
		Description: item.Description,
		Available:   &available,
	}
	if item.Photo.RemoteURL != "" {
		url := item.Photo.RemoteURL
		rec.PhotoURI = &url
	}
	return rec
}

func toDomain(rec itemRecord) *domain.Item {
	item := &domain.Item{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Price:       decimal.NewFromFloat(rec.Price).Round(2),
		IsAvailable: rec.Available == nil || *rec.Available,
	}
	if rec.PhotoURI != nil {
		item.Photo.RemoteURL = *rec.PhotoURI
	}
	return item
}

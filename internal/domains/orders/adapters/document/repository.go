// Package document stores orders in the remote document store.
package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	"github.com/Apurer/pizzeria-console/internal/platform/docstore"
)

// Repository maps orders onto the order collection.
type Repository struct {
	store docstore.Store
	loc   *time.Location
}

// NewRepository builds a Repository; loc is the zone order times are shown in.
func NewRepository(store docstore.Store, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.Local
	}
	return &Repository{store: store, loc: loc}
}

var _ ports.Repository = (*Repository)(nil)

// orderRecord is the stored shape; time is epoch milliseconds.
type orderRecord struct {
	ID             string   `firestore:"id" bson:"id" json:"id"`
	Completed      bool     `firestore:"completed" bson:"completed" json:"completed"`
	Confirmed      bool     `firestore:"confirmed" bson:"confirmed" json:"confirmed"`
	Sum            float64  `firestore:"sum" bson:"sum" json:"sum"`
	ConsumerName   string   `firestore:"consumerName" bson:"consumerName" json:"consumerName"`
	ConsumerEmail  string   `firestore:"consumerEmail" bson:"consumerEmail" json:"consumerEmail"`
	ConsumerPhone  string   `firestore:"consumerPhone" bson:"consumerPhone" json:"consumerPhone"`
	PizzaList      []string `firestore:"pizzaList" bson:"pizzaList" json:"pizzaList"`
	AdditionalInfo string   `firestore:"additionalInfo" bson:"additionalInfo" json:"additionalInfo"`
	Time           int64    `firestore:"time" bson:"time" json:"time"`
}

// Save implements ports.Repository.
func (r *Repository) Save(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	return r.store.Set(ctx, docstore.CollectionOrders, order.ID, toRecord(order))
}

// Get implements ports.Repository.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Order, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionOrders, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.decode(doc)
}

// Delete implements ports.Repository.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, docstore.CollectionOrders, id)
}

// ListByCompletion implements ports.Repository.
func (r *Repository) ListByCompletion(ctx context.Context, completed bool) ([]*domain.Order, error) {
	docs, err := r.store.Find(ctx, docstore.CollectionOrders, docstore.Query{
		Where:      []docstore.Filter{{Field: "completed", Value: completed}},
		OrderBy:    "time",
		Descending: true,
	})
	if err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := r.decode(doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *Repository) decode(doc docstore.Document) (*domain.Order, error) {
	var rec orderRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", doc.ID(), err)
	}
	if rec.ID == "" {
		rec.ID = doc.ID()
	}
	return r.toDomain(rec), nil
}

func toRecord(order *domain.Order) orderRecord {
	sum, _ := order.Sum.Float64()
	items := order.Items
	if items == nil {
		items = []string{}
	}
	return orderRecord{
		ID:             order.ID,
		Completed:      order.IsCompleted,
		Confirmed:      order.IsConfirmed,
		Sum:            sum,
		ConsumerName:   order.ConsumerName,
		ConsumerEmail:  order.ConsumerEmail,
		ConsumerPhone:  order.ConsumerPhone,
		PizzaList:      items,
		AdditionalInfo: order.AdditionalInfo,
		Time:           order.Time.UnixMilli(),
	}
}

func (r *Repository) toDomain(rec orderRecord) *domain.Order {
	when := time.UnixMilli(rec.Time).In(r.loc)
	return &domain.Order{
		ID:             rec.ID,
		IsCompleted:    rec.Completed,
		IsConfirmed:    rec.Confirmed,
		Sum:            decimal.NewFromFloat(rec.Sum).Round(2),
		ConsumerName:   rec.ConsumerName,
		ConsumerEmail:  rec.ConsumerEmail,
		ConsumerPhone:  rec.ConsumerPhone,
		Items:          append([]string(nil), rec.PizzaList...),
		AdditionalInfo: rec.AdditionalInfo,
		Time:           when,
		Slot:           domain.SlotOf(when),
	}
}

package document

import (
	"context"
	"errors"

	"github.com/Apurer/pizzeria-console/internal/domains/shop/ports"
	"github.com/Apurer/pizzeria-console/internal/platform/docstore"
)

// DefaultShopID is the document id the shop flags live under.
const DefaultShopID = "pizzeria-161"

type openRecord struct {
	Open *bool `firestore:"open" bson:"open" json:"open"`
}

type ovenRecord struct {
	Hot *bool `firestore:"hot" bson:"hot" json:"hot"`
}

// Store keeps the open flag in the main collection and the oven flag in
// the oven collection, both under the shop id.
type Store struct {
	docs   docstore.Store
	shopID string
}

// NewStore builds a Store for shopID.
func NewStore(docs docstore.Store, shopID string) *Store {
	if shopID == "" {
		shopID = DefaultShopID
	}
	return &Store{docs: docs, shopID: shopID}
}

var _ ports.Store = (*Store)(nil)

func (s *Store) Open(ctx context.Context) (bool, bool, error) {
	var rec openRecord
	found, err := s.load(ctx, docstore.CollectionShop, &rec)
	if err != nil || !found || rec.Open == nil {
		return false, false, err
	}
	return *rec.Open, true, nil
}

func (s *Store) SetOpen(ctx context.Context, open bool) error {
	return s.docs.Set(ctx, docstore.CollectionShop, s.shopID, openRecord{Open: &open})
}

func (s *Store) OvenHot(ctx context.Context) (bool, bool, error) {
	var rec ovenRecord
	found, err := s.load(ctx, docstore.CollectionOven, &rec)
	if err != nil || !found || rec.Hot == nil {
		return false, false, err
	}
	return *rec.Hot, true, nil
}

func (s *Store) SetOvenHot(ctx context.Context, hot bool) error {
	return s.docs.Set(ctx, docstore.CollectionOven, s.shopID, ovenRecord{Hot: &hot})
}

func (s *Store) load(ctx context.Context, collection string, dest any) (bool, error) {
	doc, err := s.docs.Get(ctx, collection, s.shopID)
	if errors.Is(err, docstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, doc.DataTo(dest)
}

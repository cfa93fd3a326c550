// Package firestore backs docstore with Cloud Firestore.
package firestore

import (
	"context"
	"fmt"

	gcfirestore "cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Apurer/pizzeria-console/internal/platform/docstore"
)

// Store wraps a Firestore client.
type Store struct {
	client *gcfirestore.Client
}

// NewStore builds a docstore over client.
func NewStore(client *gcfirestore.Client) *Store {
	return &Store{client: client}
}

var _ docstore.Store = (*Store)(nil)

type snapshot struct {
	snap *gcfirestore.DocumentSnapshot
}

func (s snapshot) ID() string { return s.snap.Ref.ID }

func (s snapshot) DataTo(dest any) error { return s.snap.DataTo(dest) }

// Set implements docstore.Store.
func (s *Store) Set(ctx context.Context, collection, id string, data any) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, data); err != nil {
		return fmt.Errorf("firestore set %s/%s: %w", collection, id, err)
	}
	return nil
}

// Get implements docstore.Store.
func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("firestore get %s/%s: %w", collection, id, err)
	}
	return snapshot{snap: snap}, nil
}

// Delete implements docstore.Store.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Find implements docstore.Store.
func (s *Store) Find(ctx context.Context, collection string, query docstore.Query) ([]docstore.Document, error) {
	q := s.client.Collection(collection).Query
	for _, f := range query.Where {
		q = q.Where(f.Field, "==", f.Value)
	}
	if query.OrderBy != "" {
		dir := gcfirestore.Asc
		if query.Descending {
			dir = gcfirestore.Desc
		}
		q = q.OrderBy(query.OrderBy, dir)
	}
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore query %s: %w", collection, err)
	}
	out := make([]docstore.Document, len(snaps))
	for i, snap := range snaps {
		out[i] = snapshot{snap: snap}
	}
	return out, nil
}

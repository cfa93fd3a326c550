// Package mongo backs docstore with MongoDB. Document ids are stored in _id.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Apurer/pizzeria-console/internal/platform/docstore"
)

// Connect dials uri and verifies the primary is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// Store keeps each collection in a Mongo collection of the same name.
type Store struct {
	db *mongo.Database
}

// NewStore builds a docstore over db.
func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

var _ docstore.Store = (*Store)(nil)

type document struct {
	id  string
	raw bson.Raw
}

func (d document) ID() string { return d.id }

func (d document) DataTo(dest any) error { return bson.Unmarshal(d.raw, dest) }

// Set implements docstore.Store as an upsert on _id.
func (s *Store) Set(ctx context.Context, collection, id string, data any) error {
	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, data, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo set %s/%s: %w", collection, id, err)
	}
	return nil
}

// Get implements docstore.Store.
func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	raw, err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo get %s/%s: %w", collection, id, err)
	}
	return document{id: id, raw: raw}, nil
}

// Delete implements docstore.Store.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongo delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Find implements docstore.Store.
func (s *Store) Find(ctx context.Context, collection string, query docstore.Query) ([]docstore.Document, error) {
	filter := bson.D{}
	for _, f := range query.Where {
		filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
	}
	opts := options.Find()
	if query.OrderBy != "" {
		dir := 1
		if query.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: query.OrderBy, Value: dir}})
	}
	cur, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	var out []docstore.Document
	for cur.Next(ctx) {
		raw := append(bson.Raw(nil), cur.Current...)
		id, _ := raw.Lookup("_id").StringValueOK()
		out = append(out, document{id: id, raw: raw})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo iterate %s: %w", collection, err)
	}
	return out, nil
}

// Package memory is an in-process docstore backend that stores documents as
// JSON, so records round-trip through the same tags as the remote backends.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/Apurer/pizzeria-console/internal/platform/docstore"
)

// Store keeps collections in maps guarded by a RWMutex.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{collections: make(map[string]map[string][]byte)}
}

var _ docstore.Store = (*Store)(nil)

type document struct {
	id   string
	data []byte
}

func (d document) ID() string { return d.id }

func (d document) DataTo(dest any) error { return json.Unmarshal(d.data, dest) }

// Set implements docstore.Store.
func (s *Store) Set(ctx context.Context, collection, id string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string][]byte)
		s.collections[collection] = docs
	}
	docs[id] = raw
	return nil
}

// Get implements docstore.Store.
func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.collections[collection][id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return document{id: id, data: clone(raw)}, nil
}

// Delete implements docstore.Store. Deleting a missing document is not an error.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], id)
	return nil
}

// Find implements docstore.Store.
func (s *Store) Find(ctx context.Context, collection string, query docstore.Query) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	type row struct {
		doc    document
		fields map[string]any
	}
	rows := make([]row, 0, len(s.collections[collection]))
	for id, raw := range s.collections[collection] {
		fields, err := decodeFields(raw)
		if err != nil {
			s.mu.RUnlock()
			return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
		}
		if matches(fields, query.Where) {
			rows = append(rows, row{doc: document{id: id, data: clone(raw)}, fields: fields})
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(rows, func(i, j int) bool {
		if query.OrderBy == "" {
			return rows[i].doc.id < rows[j].doc.id
		}
		c := compare(rows[i].fields[query.OrderBy], rows[j].fields[query.OrderBy])
		if query.Descending {
			return c > 0
		}
		return c < 0
	})

	out := make([]docstore.Document, len(rows))
	for i, r := range rows {
		out[i] = r.doc
	}
	return out, nil
}

// Collection returns the ids stored in collection, for tests.
func (s *Store) Collection(name string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.collections[name]))
	for id := range s.collections[name] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func decodeFields(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func matches(fields map[string]any, filters []docstore.Filter) bool {
	for _, f := range filters {
		want, err := json.Marshal(f.Value)
		if err != nil {
			return false
		}
		got, err := json.Marshal(fields[f.Field])
		if err != nil || !bytes.Equal(want, got) {
			return false
		}
	}
	return true
}

func compare(a, b any) int {
	an, aok := a.(json.Number)
	bn, bok := b.(json.Number)
	if aok && bok {
		af, _ := an.Float64()
		bf, _ := bn.Float64()
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func clone(raw []byte) []byte {
	return append([]byte(nil), raw...)
}

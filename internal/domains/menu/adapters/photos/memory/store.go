// Package memory is an in-process photo store.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/pizzeria-console/internal/domains/menu/ports"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// ErrPhotoNotFound is returned by URL for unknown keys.
var ErrPhotoNotFound = fmt.Errorf("photo %w", result.ErrNotFound)

type blob struct {
	data        []byte
	contentType string
}

// Store keeps blobs in memory. With a resize pipeline enabled every upload of
// "{id}.jpeg" also produces "{id}_1000x1000.jpeg".
type Store struct {
	mu      sync.RWMutex
	blobs   map[string]blob
	baseURL string
	resize  bool
	uploads []string
	deletes []string
}

// Option customises the Store.
type Option func(*Store)

// WithResizePipeline simulates the server-side resize step.
func WithResizePipeline() Option {
	return func(s *Store) { s.resize = true }
}

// WithBaseURL sets the prefix of returned URLs.
func WithBaseURL(base string) Option {
	return func(s *Store) { s.baseURL = strings.TrimRight(base, "/") }
}

// NewStore returns an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{blobs: make(map[string]blob), baseURL: "memory://photos"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.PhotoStore = (*Store)(nil)

// Upload implements ports.PhotoStore.
func (s *Store) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = blob{data: data, contentType: contentType}
	s.uploads = append(s.uploads, key)
	if s.resize && strings.HasSuffix(key, ".jpeg") && !strings.HasSuffix(key, "_1000x1000.jpeg") {
		s.blobs[strings.TrimSuffix(key, ".jpeg")+"_1000x1000.jpeg"] = blob{data: bytes.Clone(data), contentType: contentType}
	}
	return nil
}

// URL implements ports.PhotoStore.
func (s *Store) URL(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.blobs[key]; !ok {
		return "", fmt.Errorf("%s: %w", key, ErrPhotoNotFound)
	}
	return s.baseURL + "/" + key, nil
}

// Delete implements ports.PhotoStore.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	s.deletes = append(s.deletes, key)
	return nil
}

// Keys lists stored blob keys.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.blobs))
	for k := range s.blobs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Uploads lists keys passed to Upload, in call order.
func (s *Store) Uploads() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.uploads...)
}

// Deletes lists keys passed to Delete, in call order.
func (s *Store) Deletes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.deletes...)
}

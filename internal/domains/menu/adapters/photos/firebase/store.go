// Package firebase keeps menu pictures in a Firebase Storage bucket.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/Apurer/pizzeria-console/internal/domains/menu/ports"
)

const downloadTokenKey = "firebaseStorageDownloadTokens"

// Store implements ports.PhotoStore over a bucket handle, as returned by the
// Firebase Admin storage client.
type Store struct {
	bucket *storage.BucketHandle
}

// NewStore builds a Store over bucket.
func NewStore(bucket *storage.BucketHandle) *Store {
	return &Store{bucket: bucket}
}

var _ ports.PhotoStore = (*Store)(nil)

// ErrPhotoNotFound is returned by URL when the blob does not exist yet.
var ErrPhotoNotFound = fmt.Errorf("photo %w", storage.ErrObjectNotExist)

// Upload writes body under key with a fresh download token.
func (s *Store) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{downloadTokenKey: uuid.NewString()}
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", key, err)
	}
	return nil
}

// URL returns the tokenised download URL of key.
func (s *Store) URL(ctx context.Context, key string) (string, error) {
	attrs, err := s.bucket.Object(key).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return "", fmt.Errorf("%s: %w", key, ErrPhotoNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", key, err)
	}
	return DownloadURL(attrs.Bucket, key, attrs.Metadata[downloadTokenKey]), nil
}

// Delete removes key; a missing object is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.bucket.Object(key).Delete(ctx)
	if err == nil || errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return fmt.Errorf("delete %s: %w", key, err)
}

// DownloadURL formats the public Firebase download URL of an object.
func DownloadURL(bucket, key, token string) string {
	u := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", bucket, url.PathEscape(key))
	if token != "" {
		u += "&token=" + url.QueryEscape(token)
	}
	return u
}

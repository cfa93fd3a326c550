// Package local stages picked pictures on disk until the editor saves them.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Apurer/pizzeria-console/internal/domains/menu/ports"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// ErrBadRef rejects references that escape the staging directory.
var ErrBadRef = fmt.Errorf("%w: invalid photo reference", result.ErrValidation)

// Source resolves pending references to files under a root directory.
type Source struct {
	root string
}

// NewSource creates root if needed and returns a Source over it.
func NewSource(root string) (*Source, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Source{root: root}, nil
}

var _ ports.PhotoSource = (*Source)(nil)

// Stage copies body into a new file and returns its reference.
func (s *Source) Stage(body io.Reader) (string, error) {
	ref := uuid.NewString() + ".jpeg"
	f, err := os.Create(filepath.Join(s.root, ref))
	if err != nil {
		return "", fmt.Errorf("stage photo: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("stage photo: %w", err)
	}
	return ref, f.Close()
}

// Open implements ports.PhotoSource.
func (s *Source) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ref == "" || ref != filepath.Base(ref) || strings.HasPrefix(ref, ".") {
		return nil, ErrBadRef
	}
	return os.Open(filepath.Join(s.root, ref))
}

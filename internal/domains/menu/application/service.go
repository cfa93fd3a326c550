package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/menu/ports"
	"github.com/Apurer/pizzeria-console/internal/platform/deadline"
)

const photoContentType = "image/jpeg"

// Timing holds the budgets of menu operations.
type Timing struct {
	// Timeout bounds every call, including both phases of a save.
	Timeout time.Duration
	// ResizeDelay is waited after uploading a picture before the resized
	// variant is looked up.
	ResizeDelay time.Duration
	// DeleteDelay is waited before the blobs and record of a deleted item
	// are removed.
	DeleteDelay time.Duration
}

// DefaultTiming returns the production budgets.
func DefaultTiming() Timing {
	return Timing{Timeout: 30 * time.Second, ResizeDelay: 10 * time.Second, DeleteDelay: time.Second}
}

// Option customises the Service.
type Option func(*Service)

// WithTiming overrides the default budgets.
func WithTiming(t Timing) Option {
	return func(s *Service) { s.timing = t }
}

// Service orchestrates the menu use cases.
type Service struct {
	repo   ports.Repository
	photos ports.PhotoStore
	source ports.PhotoSource
	timing Timing
}

// NewService wires the menu service with its adapters.
func NewService(repo ports.Repository, photos ports.PhotoStore, source ports.PhotoSource, opts ...Option) *Service {
	s := &Service{repo: repo, photos: photos, source: source, timing: DefaultTiming()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Service = (*Service)(nil)

// ListItems returns every menu item.
func (s *Service) ListItems(ctx context.Context) ([]*domain.Item, error) {
	return deadline.Value(ctx, s.timing.Timeout, func(ctx context.Context) ([]*domain.Item, error) {
		return s.repo.List(ctx)
	})
}

// GetItem returns a single item or ports.ErrNotFound.
func (s *Service) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return deadline.Value(ctx, s.timing.Timeout, func(ctx context.Context) (*domain.Item, error) {
		return s.repo.Get(ctx, id)
	})
}

// Save persists item. A pending local picture is uploaded first and the item
// is stored with the URL of the resized variant. Both phases share one budget.
func (s *Service) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, mapError(err)
	}
	var saved *domain.Item
	err := deadline.Run(ctx, s.timing.Timeout, func(ctx context.Context) error {
		current := item.Clone()
		if current.NeedsUpload() {
			url, err := s.uploadPhoto(ctx, current)
			if err != nil {
				return err
			}
			current = current.WithRemotePhoto(url)
		}
		if err := s.repo.Save(ctx, current); err != nil {
			return err
		}
		saved = current
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) uploadPhoto(ctx context.Context, item *domain.Item) (string, error) {
	body, err := s.source.Open(ctx, item.Photo.PendingRef)
	if err != nil {
		return "", fmt.Errorf("open pending photo: %w", err)
	}
	defer body.Close()

	if err := s.photos.Upload(ctx, domain.OriginalPhotoKey(item.ID), body, photoContentType); err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	if err := deadline.Settle(ctx, s.timing.ResizeDelay); err != nil {
		return "", err
	}
	url, err := s.photos.URL(ctx, domain.ResizedPhotoKey(item.ID))
	if err != nil {
		return "", fmt.Errorf("resolve resized photo: %w", err)
	}
	return url, nil
}

// Delete removes the original picture, the resized picture and the record,
// in that order. The first failing step aborts the operation.
func (s *Service) Delete(ctx context.Context, id string) error {
	return deadline.Run(ctx, s.timing.Timeout, func(ctx context.Context) error {
		if err := deadline.Settle(ctx, s.timing.DeleteDelay); err != nil {
			return err
		}
		if err := s.photos.Delete(ctx, domain.OriginalPhotoKey(id)); err != nil {
			return fmt.Errorf("delete photo: %w", err)
		}
		if err := s.photos.Delete(ctx, domain.ResizedPhotoKey(id)); err != nil {
			return fmt.Errorf("delete resized photo: %w", err)
		}
		return s.repo.Delete(ctx, id)
	})
}

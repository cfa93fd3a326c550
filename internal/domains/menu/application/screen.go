package application

import (
	"context"

	"github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/menu/ports"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// Screen coordinates the menu list held by one staff screen. The held list
// is owned by the caller; every method returns the list to keep.
type Screen struct {
	menu ports.Service
}

// NewScreen builds a Screen over the menu service.
func NewScreen(menu ports.Service) *Screen {
	return &Screen{menu: menu}
}

// ListAll loads the full menu.
func (s *Screen) ListAll(ctx context.Context) result.Result[[]*domain.Item] {
	return result.From(s.menu.ListItems(ctx))
}

// Delete removes the item remotely and drops it from held without re-fetching.
func (s *Screen) Delete(ctx context.Context, id string, held []*domain.Item) result.Result[[]*domain.Item] {
	if err := s.menu.Delete(ctx, id); err != nil {
		return result.Fail[[]*domain.Item](err)
	}
	out := make([]*domain.Item, 0, len(held))
	for _, item := range held {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return result.OK(out)
}

// ToggleAvailability flips the flag, re-saves the whole item and replaces it
// in held by id. Concurrent toggles from other clients are last-write-wins.
func (s *Screen) ToggleAvailability(ctx context.Context, item *domain.Item, held []*domain.Item) result.Result[[]*domain.Item] {
	saved, err := s.menu.Save(ctx, item.ToggleAvailability())
	if err != nil {
		return result.Fail[[]*domain.Item](err)
	}
	out := make([]*domain.Item, len(held))
	for i, existing := range held {
		if existing.ID == saved.ID {
			out[i] = saved
			continue
		}
		out[i] = existing
	}
	return result.OK(out)
}

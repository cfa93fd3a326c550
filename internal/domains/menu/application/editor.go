package application

import (
	"context"
	"errors"

	"github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/menu/ports"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// Editor coordinates the single-item editor.
type Editor struct {
	menu ports.Service
}

// NewEditor builds an Editor over the menu service.
func NewEditor(menu ports.Service) *Editor {
	return &Editor{menu: menu}
}

// Load fetches the item to edit. An unknown id yields Empty so the caller
// can start a fresh item instead.
func (e *Editor) Load(ctx context.Context, id string) result.Result[*domain.Item] {
	item, err := e.menu.GetItem(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return result.None[*domain.Item]()
	}
	return result.From(item, err)
}

// New returns a blank item with a fresh id.
func (e *Editor) New() *domain.Item {
	return domain.NewItem()
}

// Save persists the edited item, uploading a pending picture if present.
func (e *Editor) Save(ctx context.Context, item *domain.Item) result.Result[*domain.Item] {
	return result.From(e.menu.Save(ctx, item))
}

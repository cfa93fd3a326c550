package mapper

import (
	"strings"

	"github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
)

// Item is the transport view of a menu item.
type Item struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	PhotoURI     string `json:"photoUri,omitempty"`
	PhotoPending bool   `json:"photoPending,omitempty"`
	IsAvailable  bool   `json:"isAvailable"`
}

// MutationItem is the payload for creating or editing an item.
type MutationItem struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
	IsAvailable *bool  `json:"isAvailable"`
	ClearPhoto  bool   `json:"clearPhoto"`
}

// FromDomainItem converts an item for transport.
func FromDomainItem(item *domain.Item) Item {
	if item == nil {
		return Item{}
	}
	return Item{
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		Price:        item.Price.String(),
		PhotoURI:     item.Photo.RemoteURL,
		PhotoPending: item.NeedsUpload(),
		IsAvailable:  item.IsAvailable,
	}
}

// FromDomainItems converts a list of items.
func FromDomainItems(items []*domain.Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		out = append(out, FromDomainItem(item))
	}
	return out
}

// ApplyMutation returns a copy of base with the payload applied.
func ApplyMutation(base *domain.Item, payload MutationItem) (*domain.Item, error) {
	price, err := domain.ParsePrice(payload.Price)
	if err != nil {
		return nil, err
	}
	item := base.Clone()
	if payload.ClearPhoto {
		item = item.ClearPhoto()
	}
	item.Name = strings.TrimSpace(payload.Name)
	item.Description = strings.TrimSpace(payload.Description)
	item.Price = price
	if payload.IsAvailable != nil {
		item.IsAvailable = *payload.IsAvailable
	}
	return item, item.Validate()
}

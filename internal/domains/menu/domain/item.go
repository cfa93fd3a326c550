package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

var (
	ErrInvalidName  = fmt.Errorf("%w: menu item name is required", result.ErrValidation)
	ErrInvalidPrice = fmt.Errorf("%w: menu item price must not be negative", result.ErrValidation)
	ErrMissingID    = fmt.Errorf("%w: menu item id is required", result.ErrValidation)
)

// Photo points at the item's picture. RemoteURL is authoritative once the
// asset is uploaded; PendingRef names a local file that still has to be.
type Photo struct {
	RemoteURL  string
	PendingRef string
}

// IsZero reports whether the item has no picture at all.
func (p Photo) IsZero() bool { return p.RemoteURL == "" && p.PendingRef == "" }

// Item is a pizza on the menu.
type Item struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Photo       Photo
	IsAvailable bool
}

// NewItem returns a fresh, available item with a random id and no photo.
func NewItem() *Item {
	return &Item{ID: uuid.NewString(), IsAvailable: true}
}

// OriginalPhotoKey is the blob key of the uploaded picture.
func OriginalPhotoKey(id string) string { return id + ".jpeg" }

// ResizedPhotoKey is the blob key of the variant produced by the resize pipeline.
func ResizedPhotoKey(id string) string { return id + "_1000x1000.jpeg" }

// Clone returns a copy safe to mutate.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// Validate enforces the invariants of a persistable item.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(i.Name) == "" {
		return ErrInvalidName
	}
	if i.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// NeedsUpload reports whether a pending local picture has not been uploaded yet.
func (i *Item) NeedsUpload() bool {
	return i.Photo.RemoteURL == "" && strings.TrimSpace(i.Photo.PendingRef) != ""
}

// WithPendingPhoto returns a copy pointing at a newly picked local picture.
func (i *Item) WithPendingPhoto(ref string) *Item {
	c := i.Clone()
	c.Photo = Photo{PendingRef: ref}
	return c
}

// WithRemotePhoto returns a copy whose picture resolved to url.
func (i *Item) WithRemotePhoto(url string) *Item {
	c := i.Clone()
	c.Photo = Photo{RemoteURL: url}
	return c
}

// ClearPhoto returns a copy without any picture.
func (i *Item) ClearPhoto() *Item {
	c := i.Clone()
	c.Photo = Photo{}
	return c
}

// ToggleAvailability returns a copy with IsAvailable flipped.
func (i *Item) ToggleAvailability() *Item {
	c := i.Clone()
	c.IsAvailable = !c.IsAvailable
	return c
}

// ParsePrice parses a decimal price as typed by staff, accepting a comma separator.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price %q is not a number", result.ErrValidation, raw)
	}
	return price, nil
}

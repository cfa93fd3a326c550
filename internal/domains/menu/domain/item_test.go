package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

func TestNewItemDefaults(t *testing.T) {
	item := NewItem()
	require.NotEmpty(t, item.ID)
	require.True(t, item.IsAvailable)
	require.True(t, item.Photo.IsZero())
	require.NotEqual(t, item.ID, NewItem().ID)
}

func TestPhotoKeys(t *testing.T) {
	require.Equal(t, "p1.jpeg", OriginalPhotoKey("p1"))
	require.Equal(t, "p1_1000x1000.jpeg", ResizedPhotoKey("p1"))
}

func TestPhotoOwnership(t *testing.T) {
	item := &Item{ID: "p1", Photo: Photo{RemoteURL: "https://cdn/p1"}}
	require.False(t, item.NeedsUpload())

	pending := item.WithPendingPhoto("upload-1")
	require.True(t, pending.NeedsUpload())
	require.Empty(t, pending.Photo.RemoteURL)
	require.Equal(t, "https://cdn/p1", item.Photo.RemoteURL, "original untouched")

	resolved := pending.WithRemotePhoto("https://cdn/p1_1000")
	require.False(t, resolved.NeedsUpload())
	require.Empty(t, resolved.Photo.PendingRef)

	require.True(t, resolved.ClearPhoto().Photo.IsZero())
}

func TestToggleAvailabilityTwiceRestores(t *testing.T) {
	item := &Item{ID: "p1", IsAvailable: true}
	once := item.ToggleAvailability()
	require.False(t, once.IsAvailable)
	require.True(t, once.ToggleAvailability().IsAvailable)
}

func TestValidate(t *testing.T) {
	item := &Item{ID: "p1", Name: "Salami", Price: decimal.NewFromInt(300)}
	require.NoError(t, item.Validate())

	item.Name = " "
	require.ErrorIs(t, item.Validate(), ErrInvalidName)

	blank := &Item{Name: "Salami"}
	require.ErrorIs(t, blank.Validate(), ErrMissingID)
	require.ErrorIs(t, blank.Validate(), result.ErrValidation)

	item.Name = "Salami"
	item.Price = decimal.NewFromInt(-1)
	require.ErrorIs(t, item.Validate(), result.ErrValidation)
}

func TestParsePrice(t *testing.T) {
	price, err := ParsePrice("450,50")
	require.NoError(t, err)
	require.True(t, price.Equal(decimal.RequireFromString("450.5")))

	_, err = ParsePrice("four hundred")
	require.ErrorIs(t, err, result.ErrValidation)
}

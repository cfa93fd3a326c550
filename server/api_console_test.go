package consoleserver

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	menuhttpmapper "github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/http/mapper"
	menudomain "github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
	apierrors "github.com/Apurer/pizzeria-console/internal/shared/errors"
)

func TestSessionEnsureIsStable(t *testing.T) {
	h := newHarness(t)

	first := h.do(t, http.MethodPost, "/v1/session", nil)
	requireStatus(t, first, http.StatusOK)
	second := h.do(t, http.MethodPost, "/v1/session", nil)
	requireStatus(t, second, http.StatusOK)

	a, b := decode[Session](t, first), decode[Session](t, second)
	assert.True(t, a.Anonymous)
	assert.NotEmpty(t, a.UserID)
	assert.Equal(t, a.UserID, b.UserID)

	requireStatus(t, h.do(t, http.MethodDelete, "/v1/session", nil), http.StatusNoContent)
	third := decode[Session](t, h.do(t, http.MethodPost, "/v1/session", nil))
	assert.NotEqual(t, a.UserID, third.UserID)
}

func TestShopLoadFailsWhenFlagsAreMissing(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/v1/shop", nil)
	requireStatus(t, rec, http.StatusNotFound)
	p := decode[problem](t, rec)
	assert.Equal(t, "not_found", p.Extensions["kind"])
}

func TestShopToggleAndOven(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.shop.SetOpen(ctx, false))
	require.NoError(t, h.shop.SetOvenHot(ctx, false))

	rec := h.do(t, http.MethodPost, "/v1/shop/open/toggle", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, ShopState{IsOpen: true}, decode[ShopState](t, rec))

	rec = h.do(t, http.MethodPut, "/v1/shop/oven", map[string]bool{"hot": true})
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, ShopState{IsOpen: true, IsOvenHot: true}, decode[ShopState](t, rec))

	open, ok, err := h.shop.GetOpen(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, open)
}

func TestShopOvenRequiresFlag(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPut, "/v1/shop/oven", map[string]string{})
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, apierrors.TypeBadRequest, decode[problem](t, rec).Type)
}

func TestMenuCreateUpdateDelete(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/v1/menu", menuhttpmapper.MutationItem{Name: "Diavola", Price: "450", Description: "spicy"})
	requireStatus(t, rec, http.StatusCreated)
	created := decode[menuhttpmapper.Item](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "450", created.Price)
	assert.True(t, created.IsAvailable)

	available := false
	rec = h.do(t, http.MethodPut, "/v1/menu/"+created.ID, menuhttpmapper.MutationItem{Name: "Diavola", Price: "470", IsAvailable: &available})
	requireStatus(t, rec, http.StatusOK)
	updated := decode[menuhttpmapper.Item](t, rec)
	assert.Equal(t, "470", updated.Price)
	assert.False(t, updated.IsAvailable)

	rec = h.do(t, http.MethodGet, "/v1/menu", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, decode[[]menuhttpmapper.Item](t, rec), 1)

	requireStatus(t, h.do(t, http.MethodDelete, "/v1/menu/"+created.ID, nil), http.StatusNoContent)
	assert.Equal(t, []string{menudomain.OriginalPhotoKey(created.ID), menudomain.ResizedPhotoKey(created.ID)}, h.photos.Deletes())

	rec = h.do(t, http.MethodGet, "/v1/menu/"+created.ID, nil)
	requireStatus(t, rec, http.StatusNotFound)
	assert.Equal(t, apierrors.TypeNotFound, decode[problem](t, rec).Type)
}

func TestMenuRejectsNegativePrice(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/v1/menu", menuhttpmapper.MutationItem{Name: "Diavola", Price: "-1"})
	requireStatus(t, rec, http.StatusUnprocessableEntity)
	assert.Equal(t, apierrors.TypeValidation, decode[problem](t, rec).Type)
	assert.Empty(t, h.docs.Collection("pizza"))
}

func TestMenuToggleAvailability(t *testing.T) {
	h := newHarness(t)
	h.seedItem(t, "p1", "Salami", 300)

	rec := h.do(t, http.MethodPost, "/v1/menu/p1/availability", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.False(t, decode[menuhttpmapper.Item](t, rec).IsAvailable)

	stored, err := h.menu.GetItem(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, stored.IsAvailable)
}

func TestMenuUploadPhoto(t *testing.T) {
	h := newHarness(t)
	h.seedItem(t, "p1", "Salami", 300)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "salami.jpeg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/menu/p1/photo", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	requireStatus(t, rec, http.StatusOK)
	item := decode[menuhttpmapper.Item](t, rec)
	assert.Equal(t, "memory://photos/p1_1000x1000.jpeg", item.PhotoURI)
	assert.False(t, item.PhotoPending)
	assert.Equal(t, []string{"p1.jpeg"}, h.photos.Uploads())
}

func TestMenuUploadRequiresFile(t *testing.T) {
	h := newHarness(t)
	h.seedItem(t, "p1", "Salami", 300)

	requireStatus(t, h.do(t, http.MethodPost, "/v1/menu/p1/photo", nil), http.StatusBadRequest)
}

package consoleserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	menuhttpmapper "github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/http/mapper"
	menuapp "github.com/Apurer/pizzeria-console/internal/domains/menu/application"
	menudomain "github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
)

// PhotoStager keeps an uploaded picture locally until the item is saved.
type PhotoStager interface {
	Stage(body io.Reader) (string, error)
}

// MenuAPI wires HTTP transport with the menu screen and item editor.
type MenuAPI struct {
	screen *menuapp.Screen
	editor *menuapp.Editor
	photos PhotoStager
}

// NewMenuAPI creates a MenuAPI. photos may be nil to disable uploads.
func NewMenuAPI(screen *menuapp.Screen, editor *menuapp.Editor, photos PhotoStager) *MenuAPI {
	return &MenuAPI{screen: screen, editor: editor, photos: photos}
}

// Get /v1/menu
// Lists every menu item
func (api *MenuAPI) ListItems(c *gin.Context) {
	res := api.screen.ListAll(c.Request.Context())
	if respondFailed(c, res) {
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromDomainItems(res.Value))
}

// Get /v1/menu/:itemId
// Loads one item for editing
func (api *MenuAPI) GetItem(c *gin.Context) {
	item, ok := api.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromDomainItem(item))
}

// Post /v1/menu
// Creates a new item
func (api *MenuAPI) CreateItem(c *gin.Context) {
	var payload menuhttpmapper.MutationItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	api.save(c, api.editor.New(), payload, http.StatusCreated)
}

// Put /v1/menu/:itemId
// Updates an existing item
func (api *MenuAPI) UpdateItem(c *gin.Context) {
	var payload menuhttpmapper.MutationItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	item, ok := api.load(c)
	if !ok {
		return
	}
	api.save(c, item, payload, http.StatusOK)
}

func (api *MenuAPI) save(c *gin.Context, base *menudomain.Item, payload menuhttpmapper.MutationItem, status int) {
	item, err := menuhttpmapper.ApplyMutation(base, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	res := api.editor.Save(c.Request.Context(), item)
	if respondFailed(c, res) {
		return
	}
	c.JSON(status, menuhttpmapper.FromDomainItem(res.Value))
}

// Delete /v1/menu/:itemId
// Deletes an item together with its pictures
func (api *MenuAPI) DeleteItem(c *gin.Context) {
	res := api.screen.Delete(c.Request.Context(), c.Param("itemId"), nil)
	if respondFailed(c, res) {
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/menu/:itemId/availability
// Flips whether the item can be ordered
func (api *MenuAPI) ToggleAvailability(c *gin.Context) {
	item, ok := api.load(c)
	if !ok {
		return
	}
	res := api.screen.ToggleAvailability(c.Request.Context(), item, []*menudomain.Item{item})
	if respondFailed(c, res) {
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromDomainItem(res.Value[0]))
}

// Post /v1/menu/:itemId/photo
// Uploads a new picture for the item
func (api *MenuAPI) UploadPhoto(c *gin.Context) {
	if api.photos == nil {
		respondBadRequest(c, errors.New("photo uploads are disabled"))
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	item, ok := api.load(c)
	if !ok {
		return
	}
	body, err := file.Open()
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	defer body.Close()
	ref, err := api.photos.Stage(body)
	if err != nil {
		respondError(c, err)
		return
	}
	res := api.editor.Save(c.Request.Context(), item.WithPendingPhoto(ref))
	if respondFailed(c, res) {
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromDomainItem(res.Value))
}

func (api *MenuAPI) load(c *gin.Context) (*menudomain.Item, bool) {
	id := c.Param("itemId")
	res := api.editor.Load(c.Request.Context(), id)
	if res.IsEmpty() {
		responder.NotFound(c, "menu item", id)
		return nil, false
	}
	if respondFailed(c, res) {
		return nil, false
	}
	return res.Value, true
}

package consoleserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	shopapp "github.com/Apurer/pizzeria-console/internal/domains/shop/application"
	shopdomain "github.com/Apurer/pizzeria-console/internal/domains/shop/domain"
)

// ShopState is the transport view of the dashboard flags.
type ShopState struct {
	IsOpen    bool `json:"isOpen"`
	IsOvenHot bool `json:"isOvenHot"`
}

// OvenPayload sets the oven flag.
type OvenPayload struct {
	Hot *bool `json:"hot" binding:"required"`
}

// ShopAPI exposes the manager dashboard.
type ShopAPI struct {
	dashboard *shopapp.Dashboard
}

func NewShopAPI(dashboard *shopapp.Dashboard) *ShopAPI {
	return &ShopAPI{dashboard: dashboard}
}

func shopState(s shopdomain.State) ShopState {
	return ShopState{IsOpen: s.IsOpen, IsOvenHot: s.IsOvenHot}
}

// Get /v1/shop
// Loads the open and oven flags
func (api *ShopAPI) Load(c *gin.Context) {
	res := api.dashboard.Load(c.Request.Context())
	if respondFailed(c, res) {
		return
	}
	c.JSON(http.StatusOK, shopState(res.Value))
}

// Post /v1/shop/open/toggle
// Opens a closed shop or closes an open one
func (api *ShopAPI) ToggleOpen(c *gin.Context) {
	current := api.dashboard.Load(c.Request.Context())
	if respondFailed(c, current) {
		return
	}
	res := api.dashboard.ToggleOpen(c.Request.Context(), current.Value)
	if respondFailed(c, res) {
		return
	}
	c.JSON(http.StatusOK, shopState(res.Value))
}

// Put /v1/shop/oven
// Sets whether the oven is hot
func (api *ShopAPI) SetOvenHot(c *gin.Context) {
	var payload OvenPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	current := api.dashboard.Load(c.Request.Context())
	if respondFailed(c, current) {
		return
	}
	res := api.dashboard.SetOvenHot(c.Request.Context(), current.Value, *payload.Hot)
	if respondFailed(c, res) {
		return
	}
	c.JSON(http.StatusOK, shopState(res.Value))
}

// Package consoleserver exposes the staff console over HTTP.
package consoleserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers groups the APIs mounted by NewRouter. A nil API is skipped.
type Handlers struct {
	Session *SessionAPI
	Shop    *ShopAPI
	Menu    *MenuAPI
	Orders  *OrderAPI
	Reasons *ReasonAPI
}

// Route describes one endpoint.
type Route struct {
	Method  string
	Pattern string
	Handler gin.HandlerFunc
}

// NewRouter builds a gin engine with every route under /v1.
func NewRouter(h Handlers, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	group := router.Group("/v1")
	for _, r := range h.Routes() {
		group.Handle(r.Method, r.Pattern, r.Handler)
	}
	return router
}

// Routes lists the endpoints of every configured API.
func (h Handlers) Routes() []Route {
	var routes []Route
	if h.Session != nil {
		routes = append(routes,
			Route{http.MethodPost, "/session", h.Session.EnsureSession},
			Route{http.MethodDelete, "/session", h.Session.SignOut},
		)
	}
	if h.Shop != nil {
		routes = append(routes,
			Route{http.MethodGet, "/shop", h.Shop.Load},
			Route{http.MethodPost, "/shop/open/toggle", h.Shop.ToggleOpen},
			Route{http.MethodPut, "/shop/oven", h.Shop.SetOvenHot},
		)
	}
	if h.Menu != nil {
		routes = append(routes,
			Route{http.MethodGet, "/menu", h.Menu.ListItems},
			Route{http.MethodPost, "/menu", h.Menu.CreateItem},
			Route{http.MethodGet, "/menu/:itemId", h.Menu.GetItem},
			Route{http.MethodPut, "/menu/:itemId", h.Menu.UpdateItem},
			Route{http.MethodDelete, "/menu/:itemId", h.Menu.DeleteItem},
			Route{http.MethodPost, "/menu/:itemId/availability", h.Menu.ToggleAvailability},
			Route{http.MethodPost, "/menu/:itemId/photo", h.Menu.UploadPhoto},
		)
	}
	if h.Orders != nil {
		routes = append(routes,
			Route{http.MethodGet, "/orders", h.Orders.ListOrders},
			Route{http.MethodGet, "/orders/:orderId/edit", h.Orders.LoadEdit},
			Route{http.MethodPut, "/orders/:orderId", h.Orders.SaveEdit},
			Route{http.MethodDelete, "/orders/:orderId", h.Orders.DeleteOrder},
			Route{http.MethodPost, "/orders/:orderId/items", h.Orders.AddItem},
			Route{http.MethodDelete, "/orders/:orderId/items/:name", h.Orders.RemoveItem},
			Route{http.MethodPost, "/orders/:orderId/complete", h.Orders.MarkCompleted},
			Route{http.MethodPost, "/orders/:orderId/reopen", h.Orders.MarkNew},
			Route{http.MethodPost, "/orders/:orderId/confirm", h.Orders.Confirm},
			Route{http.MethodPost, "/orders/:orderId/reject", h.Orders.Reject},
			Route{http.MethodPost, "/orders/:orderId/receipt", h.Orders.ResendReceipt},
		)
	}
	if h.Reasons != nil {
		routes = append(routes,
			Route{http.MethodGet, "/reasons", h.Reasons.ListReasons},
			Route{http.MethodPost, "/reasons", h.Reasons.AddReason},
			Route{http.MethodGet, "/reasons/stream", h.Reasons.StreamReasons},
			Route{http.MethodDelete, "/reasons/:reasonId", h.Reasons.DeleteReason},
		)
	}
	return routes
}

package consoleserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	menuhttpmapper "github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/http/mapper"
	orderhttpmapper "github.com/Apurer/pizzeria-console/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/Apurer/pizzeria-console/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	ordersports "github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// EditSession is the transport view of the order editor state.
type EditSession struct {
	Menu  []menuhttpmapper.Item `json:"menu"`
	Order orderhttpmapper.Order `json:"order"`
}

// ReceiptSender emails the "order received" receipt.
type ReceiptSender interface {
	SendReceipt(ctx context.Context, order *ordersdomain.Order) error
}

// OrderAPI wires HTTP transport with the order board and order editor.
type OrderAPI struct {
	orders       ordersports.Service
	orchestrator *ordersapp.Orchestrator
	editor       *ordersapp.Editor
	receipts     ReceiptSender
}

func NewOrderAPI(orders ordersports.Service, orchestrator *ordersapp.Orchestrator, editor *ordersapp.Editor, receipts ReceiptSender) *OrderAPI {
	return &OrderAPI{orders: orders, orchestrator: orchestrator, editor: editor, receipts: receipts}
}

// Get /v1/orders
// Lists open orders, or closed ones with completed=true
func (api *OrderAPI) ListOrders(c *gin.Context) {
	completed := false
	if raw := c.Query("completed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondBadRequest(c, fmt.Errorf("completed: %w", err))
			return
		}
		completed = v
	}
	var res result.Result[[]*ordersdomain.Order]
	if completed {
		res = api.orchestrator.ListCompleted(c.Request.Context())
	} else {
		res = api.orchestrator.ListNew(c.Request.Context())
	}
	if respondFailed(c, res) {
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(res.Value))
}

// Get /v1/orders/:orderId/edit
// Loads the order together with the menu it can be edited from
func (api *OrderAPI) LoadEdit(c *gin.Context) {
	session, ok := api.loadSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, EditSession{
		Menu:  menuhttpmapper.FromDomainItems(session.Menu),
		Order: orderhttpmapper.FromDomainOrder(session.Order),
	})
}

// Put /v1/orders/:orderId
// Changes the ready-by time and comment of an order
func (api *OrderAPI) SaveEdit(c *gin.Context) {
	var payload orderhttpmapper.EditOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	session, ok := api.loadSession(c)
	if !ok {
		return
	}
	api.save(c, orderhttpmapper.ApplyEdit(session.Order, payload))
}

// Post /v1/orders/:orderId/items
// Adds one menu item to the order
func (api *OrderAPI) AddItem(c *gin.Context) {
	var payload orderhttpmapper.AddItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	session, ok := api.loadSession(c)
	if !ok {
		return
	}
	for _, item := range session.Menu {
		if item.ID == payload.ItemID {
			res := api.editor.AddItem(item, session.Order)
			if respondFailed(c, res) {
				return
			}
			api.save(c, res.Value)
			return
		}
	}
	respondError(c, fmt.Errorf("%q: %w", payload.ItemID, ordersdomain.ErrItemNotOnMenu))
}

// Delete /v1/orders/:orderId/items/:name
// Removes one occurrence of the named item
func (api *OrderAPI) RemoveItem(c *gin.Context) {
	session, ok := api.loadSession(c)
	if !ok {
		return
	}
	res := api.editor.RemoveItem(c.Param("name"), session.Menu, session.Order)
	if respondFailed(c, res) {
		return
	}
	api.save(c, res.Value)
}

func (api *OrderAPI) save(c *gin.Context, order *ordersdomain.Order) {
	res := api.editor.Save(c.Request.Context(), order)
	if respondFailed(c, res) {
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(res.Value))
}

// Post /v1/orders/:orderId/complete
// Closes the order without emailing the customer
func (api *OrderAPI) MarkCompleted(c *gin.Context) {
	api.transition(c, api.orchestrator.MarkCompleted)
}

// Post /v1/orders/:orderId/reopen
// Reopens a closed order without emailing the customer
func (api *OrderAPI) MarkNew(c *gin.Context) {
	api.transition(c, api.orchestrator.MarkNew)
}

// Post /v1/orders/:orderId/confirm
// Accepts the order and emails the customer
func (api *OrderAPI) Confirm(c *gin.Context) {
	api.transition(c, api.orchestrator.Confirm)
}

// Post /v1/orders/:orderId/reject
// Declines the order and emails the customer the reason
func (api *OrderAPI) Reject(c *gin.Context) {
	var payload orderhttpmapper.Reject
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondBadRequest(c, err)
			return
		}
	}
	order, ok := api.loadOrder(c)
	if !ok {
		return
	}
	res := api.orchestrator.Reject(c.Request.Context(), order, payload.Reason, []*ordersdomain.Order{order})
	api.respondTransition(c, res)
}

// Post /v1/orders/:orderId/receipt
// Emails the customer the order receipt again
func (api *OrderAPI) ResendReceipt(c *gin.Context) {
	order, ok := api.loadOrder(c)
	if !ok {
		return
	}
	if err := api.receipts.SendReceipt(c.Request.Context(), order); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// Delete /v1/orders/:orderId
// Deletes the order
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	res := api.orchestrator.Delete(c.Request.Context(), c.Param("orderId"), nil)
	if respondFailed(c, res) {
		return
	}
	c.Status(http.StatusNoContent)
}

type transitionFunc func(context.Context, *ordersdomain.Order, []*ordersdomain.Order) result.Result[[]*ordersdomain.Order]

func (api *OrderAPI) transition(c *gin.Context, run transitionFunc) {
	order, ok := api.loadOrder(c)
	if !ok {
		return
	}
	api.respondTransition(c, run(c.Request.Context(), order, []*ordersdomain.Order{order}))
}

func (api *OrderAPI) respondTransition(c *gin.Context, res result.Result[[]*ordersdomain.Order]) {
	if respondFailed(c, res) {
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(res.Value[0]))
}

func (api *OrderAPI) loadOrder(c *gin.Context) (*ordersdomain.Order, bool) {
	order, err := api.orders.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return order, true
}

func (api *OrderAPI) loadSession(c *gin.Context) (ordersapp.EditSession, bool) {
	res := api.editor.LoadAll(c.Request.Context(), c.Param("orderId"))
	if respondFailed(c, res) {
		return ordersapp.EditSession{}, false
	}
	return res.Value, true
}

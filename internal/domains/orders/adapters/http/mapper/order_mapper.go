package mapper

import (
	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
)

// Order is the transport view of an order.
type Order struct {
	ID             string   `json:"id"`
	State          string   `json:"state"`
	IsCompleted    bool     `json:"isCompleted"`
	IsConfirmed    bool     `json:"isConfirmed"`
	Sum            string   `json:"sum"`
	ConsumerName   string   `json:"consumerName"`
	ConsumerEmail  string   `json:"consumerEmail"`
	ConsumerPhone  string   `json:"consumerPhone"`
	PizzaList      []string `json:"pizzaList"`
	AdditionalInfo string   `json:"additionalInfo"`
	Time           string   `json:"time"`
	Hour           string   `json:"hour"`
	Day            string   `json:"day"`
}

// EditOrder carries the editable order fields.
type EditOrder struct {
	Hour           string  `json:"hour" binding:"required"`
	Day            string  `json:"day" binding:"required"`
	AdditionalInfo *string `json:"additionalInfo"`
}

// AddItem names the menu item to add.
type AddItem struct {
	ItemID string `json:"itemId" binding:"required"`
}

// Reject carries the reason shown to the customer.
type Reject struct {
	Reason string `json:"reason"`
}

// FromDomainOrder converts an order for transport.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := order.Items
	if items == nil {
		items = []string{}
	}
	return Order{
		ID:             order.ID,
		State:          string(order.State()),
		IsCompleted:    order.IsCompleted,
		IsConfirmed:    order.IsConfirmed,
		Sum:            order.Sum.String(),
		ConsumerName:   order.ConsumerName,
		ConsumerEmail:  order.ConsumerEmail,
		ConsumerPhone:  order.ConsumerPhone,
		PizzaList:      items,
		AdditionalInfo: order.AdditionalInfo,
		Time:           domain.FormatTime(order.Time),
		Hour:           order.Slot.Hour,
		Day:            order.Slot.Day,
	}
}

// FromDomainOrders converts a list of orders.
func FromDomainOrders(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomainOrder(o))
	}
	return out
}

// ApplyEdit returns a copy of order with the edit applied. The time itself
// is recomposed from the slot when the order is saved.
func ApplyEdit(order *domain.Order, edit EditOrder) *domain.Order {
	c := order.Clone()
	c.Slot = domain.Slot{Hour: edit.Hour, Day: edit.Day}
	if edit.AdditionalInfo != nil {
		c.AdditionalInfo = *edit.AdditionalInfo
	}
	return c
}

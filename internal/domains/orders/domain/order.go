package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// State enumerates the order lifecycle.
type State string

const (
	StateNew       State = "new"
	StateConfirmed State = "confirmed"
	StateRejected  State = "rejected"
	StateCompleted State = "completed"
)

var (
	ErrItemNotInOrder = fmt.Errorf("%w: item is not part of the order", result.ErrValidation)
	ErrItemNotOnMenu  = fmt.Errorf("%w: item is not on the menu", result.ErrValidation)
)

// Order is a customer order as seen by staff.
type Order struct {
	ID             string
	IsCompleted    bool
	IsConfirmed    bool
	Sum            decimal.Decimal
	ConsumerName   string
	ConsumerEmail  string
	ConsumerPhone  string
	Items          []string
	AdditionalInfo string
	// Time is the moment the order should be ready.
	Time time.Time
	// Slot holds the editable hour and day of Time.
	Slot Slot
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = slices.Clone(o.Items)
	return &c
}

// State derives the lifecycle state from the two flags. A completed order
// that was never confirmed reads as rejected.
func (o *Order) State() State {
	switch {
	case o.IsCompleted && o.IsConfirmed:
		return StateCompleted
	case o.IsCompleted:
		return StateRejected
	case o.IsConfirmed:
		return StateConfirmed
	default:
		return StateNew
	}
}

// MarkCompleted closes the order, keeping the confirmation flag.
func (o *Order) MarkCompleted() *Order {
	c := o.Clone()
	c.IsCompleted = true
	return c
}

// MarkNew reopens a completed order, keeping the confirmation flag.
func (o *Order) MarkNew() *Order {
	c := o.Clone()
	c.IsCompleted = false
	return c
}

// Confirm accepts the order.
func (o *Order) Confirm() *Order {
	c := o.Clone()
	c.IsConfirmed = true
	c.IsCompleted = false
	return c
}

// Reject declines the order.
func (o *Order) Reject() *Order {
	c := o.Clone()
	c.IsConfirmed = false
	c.IsCompleted = true
	return c
}

// AddItem appends name, keeps the item list sorted and adds price to the sum.
func (o *Order) AddItem(name string, price decimal.Decimal) *Order {
	c := o.Clone()
	c.Items = append(c.Items, name)
	slices.Sort(c.Items)
	c.Sum = c.Sum.Add(price)
	return c
}

// RemoveItem drops the first occurrence of name and subtracts price.
func (o *Order) RemoveItem(name string, price decimal.Decimal) (*Order, error) {
	idx := slices.Index(o.Items, name)
	if idx < 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrItemNotInOrder)
	}
	c := o.Clone()
	c.Items = slices.Delete(c.Items, idx, idx+1)
	c.Sum = c.Sum.Sub(price)
	return c, nil
}

// Replace returns held with the order sharing updated's id swapped for updated.
func Replace(held []*Order, updated *Order) []*Order {
	out := make([]*Order, len(held))
	for i, o := range held {
		if o.ID == updated.ID {
			out[i] = updated
			continue
		}
		out[i] = o
	}
	return out
}

// Without returns held minus the order with id.
func Without(held []*Order, id string) []*Order {
	out := make([]*Order, 0, len(held))
	for _, o := range held {
		if o.ID != id {
			out = append(out, o)
		}
	}
	return out
}

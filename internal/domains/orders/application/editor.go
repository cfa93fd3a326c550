package application

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	menudomain "github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// EditSession is what the order editor works on.
type EditSession struct {
	Menu  []*menudomain.Item
	Order *domain.Order
}

// Editor coordinates editing the contents and time of one order. AddItem
// and RemoveItem only change the returned copy; Save persists it.
type Editor struct {
	orders ports.Service
	menu   ports.MenuCatalog
	loc    *time.Location
}

// NewEditor builds an Editor whose order times are interpreted in loc.
func NewEditor(orders ports.Service, menu ports.MenuCatalog, loc *time.Location) *Editor {
	if loc == nil {
		loc = time.Local
	}
	return &Editor{orders: orders, menu: menu, loc: loc}
}

// LoadAll fetches the menu and the order together; either failing fails both.
func (e *Editor) LoadAll(ctx context.Context, orderID string) result.Result[EditSession] {
	var session EditSession
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := e.menu.ListItems(gctx)
		session.Menu = items
		return err
	})
	g.Go(func() error {
		order, err := e.orders.Get(gctx, orderID)
		session.Order = order
		return err
	})
	if err := g.Wait(); err != nil {
		return result.Fail[EditSession](err)
	}
	return result.OK(session)
}

// AddItem puts one more of item into order.
func (e *Editor) AddItem(item *menudomain.Item, order *domain.Order) result.Result[*domain.Order] {
	return result.OK(order.AddItem(item.Name, item.Price))
}

// RemoveItem takes one occurrence of name out of order, priced from menu.
func (e *Editor) RemoveItem(name string, menu []*menudomain.Item, order *domain.Order) result.Result[*domain.Order] {
	item := findByName(menu, name)
	if item == nil {
		return result.Fail[*domain.Order](mapError(fmt.Errorf("%q: %w", name, domain.ErrItemNotOnMenu)))
	}
	updated, err := order.RemoveItem(name, item.Price)
	if err != nil {
		return result.Fail[*domain.Order](mapError(err))
	}
	return result.OK(updated)
}

// Save rebuilds the order time from its edited slot and persists the order.
func (e *Editor) Save(ctx context.Context, order *domain.Order) result.Result[*domain.Order] {
	when, err := order.Slot.Compose(e.loc)
	if err != nil {
		return result.Fail[*domain.Order](mapError(err))
	}
	updated := order.WithTime(when)
	if err := e.orders.Save(ctx, updated); err != nil {
		return result.Fail[*domain.Order](err)
	}
	return result.OK(updated)
}

func findByName(menu []*menudomain.Item, name string) *menudomain.Item {
	for _, item := range menu {
		if item.Name == name {
			return item
		}
	}
	return nil
}

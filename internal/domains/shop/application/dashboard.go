package application

import (
	"context"
	"fmt"

	"github.com/Apurer/pizzeria-console/internal/domains/shop/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/shop/ports"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

var (
	// ErrOpenUnknown means the open flag has never been stored.
	ErrOpenUnknown = fmt.Errorf("%w: shop open state is missing", result.ErrNotFound)
	// ErrOvenUnknown means the oven flag has never been stored.
	ErrOvenUnknown = fmt.Errorf("%w: oven state is missing", result.ErrNotFound)
)

// Dashboard drives the manager screen.
type Dashboard struct {
	shop     *Service
	sessions ports.Sessions
}

// NewDashboard builds a Dashboard. sessions may be nil when no sign-in is
// needed.
func NewDashboard(shop *Service, sessions ports.Sessions) *Dashboard {
	return &Dashboard{shop: shop, sessions: sessions}
}

// Load signs in if needed and reads both flags. A missing flag fails the
// load just like an error does.
func (d *Dashboard) Load(ctx context.Context) result.Result[domain.State] {
	if d.sessions != nil {
		if err := d.sessions.Ensure(ctx); err != nil {
			return result.Fail[domain.State](err)
		}
	}
	open, ok, err := d.shop.GetOpen(ctx)
	if err != nil {
		return result.Fail[domain.State](err)
	}
	if !ok {
		return result.Fail[domain.State](ErrOpenUnknown)
	}
	hot, ok, err := d.shop.GetOvenHot(ctx)
	if err != nil {
		return result.Fail[domain.State](err)
	}
	if !ok {
		return result.Fail[domain.State](ErrOvenUnknown)
	}
	return result.OK(domain.State{IsOpen: open, IsOvenHot: hot})
}

// ToggleOpen writes the opposite of current.IsOpen.
func (d *Dashboard) ToggleOpen(ctx context.Context, current domain.State) result.Result[domain.State] {
	next := !current.IsOpen
	if err := d.shop.SetOpen(ctx, next); err != nil {
		return result.Fail[domain.State](err)
	}
	current.IsOpen = next
	return result.OK(current)
}

// SetOvenHot writes the oven flag.
func (d *Dashboard) SetOvenHot(ctx context.Context, current domain.State, hot bool) result.Result[domain.State] {
	if err := d.shop.SetOvenHot(ctx, hot); err != nil {
		return result.Fail[domain.State](err)
	}
	current.IsOvenHot = hot
	return result.OK(current)
}

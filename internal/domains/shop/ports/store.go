package ports

import "context"

// Store reads and writes the shop flags. The bool returned next to a value
// reports whether the flag exists at all.
type Store interface {
	Open(ctx context.Context) (bool, bool, error)
	SetOpen(ctx context.Context, open bool) error
	OvenHot(ctx context.Context) (bool, bool, error)
	SetOvenHot(ctx context.Context, hot bool) error
}

// Sessions guarantees a signed-in identity before the dashboard loads.
type Sessions interface {
	Ensure(ctx context.Context) error
}

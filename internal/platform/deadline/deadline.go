// Package deadline bounds remote calls with explicit time budgets.
package deadline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// Run executes fn under a timeout of d. When the budget expires the returned
// error wraps result.ErrTimeout. A non-positive d runs fn unbounded.
// Cancellation of ctx is returned unchanged and nothing already committed by
// fn is rolled back.
func Run(ctx context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	if d <= 0 {
		return fn(ctx)
	}
	bounded, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	err := fn(bounded)
	if err == nil {
		return nil
	}
	if ctx.Err() == nil && errors.Is(bounded.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %w", result.ErrTimeout, d, err)
	}
	return err
}

// Value is Run for functions that produce a value.
func Value[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := Run(ctx, d, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// Settle waits d, returning early with ctx.Err() if ctx ends first.
func Settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

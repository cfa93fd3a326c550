// Package broadcast fans snapshots out to live subscribers.
package broadcast

import (
	"context"
	"sync"
)

// Hub delivers published values to subscribers with replay-none,
// latest-value semantics: a subscriber only sees values published after it
// subscribed, and an undelivered value is replaced by a newer one.
type Hub[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan T
}

// NewHub returns an empty hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[int]chan T)}
}

// Subscribe registers a subscriber until ctx ends, at which point the
// returned channel is closed.
func (h *Hub[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, id)
		close(ch)
		h.mu.Unlock()
	}()
	return ch
}

// Publish offers value to every current subscriber without blocking.
func (h *Hub[T]) Publish(value T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		offer(ch, value)
	}
}

// Offer replaces any pending value in a capacity-one channel with value.
func Offer[T any](ch chan T, value T) {
	offer(ch, value)
}

func offer[T any](ch chan T, value T) {
	for {
		select {
		case ch <- value:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Len reports the number of active subscribers.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Apurer/pizzeria-console/internal/domains/rejections/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/rejections/ports"
	"github.com/Apurer/pizzeria-console/internal/platform/broadcast"
)

// Cache is an in-memory reason cache.
type Cache struct {
	mu      sync.Mutex
	nextID  int64
	reasons map[int64]string
	hub     *broadcast.Hub[[]domain.Reason]
}

func NewCache() *Cache {
	return &Cache{nextID: 1, reasons: make(map[int64]string), hub: broadcast.NewHub[[]domain.Reason]()}
}

var _ ports.Cache = (*Cache)(nil)

func (c *Cache) Upsert(_ context.Context, reason domain.Reason) (domain.Reason, error) {
	c.mu.Lock()
	if reason.IsNew() {
		reason.ID = c.nextID
		c.nextID++
	} else if reason.ID >= c.nextID {
		c.nextID = reason.ID + 1
	}
	c.reasons[reason.ID] = reason.Text
	c.hub.Publish(c.snapshotLocked())
	c.mu.Unlock()
	return reason, nil
}

func (c *Cache) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	delete(c.reasons, id)
	c.hub.Publish(c.snapshotLocked())
	c.mu.Unlock()
	return nil
}

func (c *Cache) List(ctx context.Context) ([]domain.Reason, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(), nil
}

func (c *Cache) Watch(ctx context.Context) (<-chan []domain.Reason, error) {
	sub := c.hub.Subscribe(ctx)
	current, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan []domain.Reason, 1)
	out <- current
	go func() {
		defer close(out)
		for reasons := range sub {
			broadcast.Offer(out, reasons)
		}
	}()
	return out, nil
}

func (c *Cache) snapshotLocked() []domain.Reason {
	out := make([]domain.Reason, 0, len(c.reasons))
	for id, text := range c.reasons {
		out = append(out, domain.Reason{ID: id, Text: text})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

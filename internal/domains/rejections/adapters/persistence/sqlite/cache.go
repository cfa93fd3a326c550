package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Apurer/pizzeria-console/internal/domains/rejections/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/rejections/ports"
	"github.com/Apurer/pizzeria-console/internal/platform/broadcast"
)

// Cache keeps rejection reasons in the embedded database and pushes a fresh
// list to watchers after every change.
type Cache struct {
	db  *gorm.DB
	hub *broadcast.Hub[[]domain.Reason]
}

// NewCache wires the cache. Caller owns the DB lifecycle and runs the local
// migrations.
func NewCache(db *gorm.DB) *Cache {
	return &Cache{db: db, hub: broadcast.NewHub[[]domain.Reason]()}
}

type reasonRecord struct {
	ID     int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Reason string `gorm:"column:reason"`
}

func (reasonRecord) TableName() string { return "rejection_reasons" }

var _ ports.Cache = (*Cache)(nil)

func (c *Cache) Upsert(ctx context.Context, reason domain.Reason) (domain.Reason, error) {
	if err := c.ensureDB(); err != nil {
		return domain.Reason{}, err
	}
	rec := reasonRecord{ID: reason.ID, Reason: reason.Text}
	db := c.db.WithContext(ctx)
	var err error
	if reason.IsNew() {
		err = db.Create(&rec).Error
	} else {
		err = db.Save(&rec).Error
	}
	if err != nil {
		return domain.Reason{}, err
	}
	c.publish(ctx)
	return domain.Reason{ID: rec.ID, Text: rec.Reason}, nil
}

func (c *Cache) Delete(ctx context.Context, id int64) error {
	if err := c.ensureDB(); err != nil {
		return err
	}
	if err := c.db.WithContext(ctx).Delete(&reasonRecord{}, id).Error; err != nil {
		return err
	}
	c.publish(ctx)
	return nil
}

func (c *Cache) List(ctx context.Context) ([]domain.Reason, error) {
	if err := c.ensureDB(); err != nil {
		return nil, err
	}
	var recs []reasonRecord
	if err := c.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Reason, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.Reason{ID: rec.ID, Text: rec.Reason})
	}
	return out, nil
}

func (c *Cache) Watch(ctx context.Context) (<-chan []domain.Reason, error) {
	if err := c.ensureDB(); err != nil {
		return nil, err
	}
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

func (c *Cache) publish(ctx context.Context) {
	if c.hub.Len() == 0 {
		return
	}
	reasons, err := c.List(context.WithoutCancel(ctx))
	if err != nil {
		return
	}
	c.hub.Publish(reasons)
}

func (c *Cache) ensureDB() error {
	if c == nil || c.db == nil {
		return errors.New("sqlite reason cache not configured")
	}
	return nil
}

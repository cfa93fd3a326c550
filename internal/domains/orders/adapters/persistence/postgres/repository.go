package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. The schema is owned by
// the migrations package.
type Repository struct {
	db  *gorm.DB
	loc *time.Location
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.Local
	}
	return &Repository{db: db, loc: loc}
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID             string          `gorm:"primaryKey;column:id;size:64"`
	Completed      bool            `gorm:"column:completed"`
	Confirmed      bool            `gorm:"column:confirmed"`
	Sum            decimal.Decimal `gorm:"column:sum;type:numeric(12,2)"`
	ConsumerName   string          `gorm:"column:consumer_name"`
	ConsumerEmail  string          `gorm:"column:consumer_email"`
	ConsumerPhone  string          `gorm:"column:consumer_phone"`
	Items          pq.StringArray  `gorm:"column:items;type:text[]"`
	AdditionalInfo string          `gorm:"column:additional_info"`
	Time           time.Time       `gorm:"column:time"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts or updates an order.
func (r *Repository) Save(ctx context.Context, order *domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if order == nil {
		return errors.New("order is nil")
	}
	record := toRecord(order)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"completed":       record.Completed,
				"confirmed":       record.Confirmed,
				"sum":             record.Sum,
				"consumer_name":   record.ConsumerName,
				"consumer_email":  record.ConsumerEmail,
				"consumer_phone":  record.ConsumerPhone,
				"items":           record.Items,
				"additional_info": record.AdditionalInfo,
				"time":            record.Time,
				"updated_at":      gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
}

// Get fetches an order by identifier.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return r.toDomain(record), nil
}

// Delete removes an order by identifier. Deleting a missing order succeeds,
// matching the document store.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&orderRecord{}, "id = ?", id).Error
}

// ListByCompletion returns orders by completed flag, newest time first.
func (r *Repository) ListByCompletion(ctx context.Context, completed bool) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("completed = ?", completed).
		Order("time DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, r.toDomain(records[i]))
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:             order.ID,
		Completed:      order.IsCompleted,
		Confirmed:      order.IsConfirmed,
		Sum:            order.Sum,
		ConsumerName:   order.ConsumerName,
		ConsumerEmail:  order.ConsumerEmail,
		ConsumerPhone:  order.ConsumerPhone,
		Items:          pq.StringArray(append([]string{}, order.Items...)),
		AdditionalInfo: order.AdditionalInfo,
		Time:           order.Time.UTC(),
	}
}

func (r *Repository) toDomain(rec orderRecord) *domain.Order {
	when := rec.Time.In(r.loc)
	return &domain.Order{
		ID:             rec.ID,
		IsCompleted:    rec.Completed,
		IsConfirmed:    rec.Confirmed,
		Sum:            rec.Sum,
		ConsumerName:   rec.ConsumerName,
		ConsumerEmail:  rec.ConsumerEmail,
		ConsumerPhone:  rec.ConsumerPhone,
		Items:          []string(rec.Items),
		AdditionalInfo: rec.AdditionalInfo,
		Time:           when,
		Slot:           domain.SlotOf(when),
	}
}

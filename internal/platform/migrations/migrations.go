package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the relational order schema.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&orderRecord{})
}

// RunLocal applies the schema of the embedded device-local database.
func RunLocal(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&reasonRecord{}, &sessionRecord{})
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID             string          `gorm:"primaryKey;column:id;size:64"`
	Completed      bool            `gorm:"column:completed;index:idx_orders_completed_time"`
	Confirmed      bool            `gorm:"column:confirmed"`
	Sum            decimal.Decimal `gorm:"column:sum;type:numeric(12,2)"`
	ConsumerName   string          `gorm:"column:consumer_name"`
	ConsumerEmail  string          `gorm:"column:consumer_email"`
	ConsumerPhone  string          `gorm:"column:consumer_phone"`
	Items          pq.StringArray  `gorm:"column:items;type:text[]"`
	AdditionalInfo string          `gorm:"column:additional_info"`
	Time           time.Time       `gorm:"column:time;index:idx_orders_completed_time,sort:desc"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Reason schema mirrors the rejections SQLite cache.
type reasonRecord struct {
	ID     int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Reason string `gorm:"column:reason"`
}

func (reasonRecord) TableName() string { return "rejection_reasons" }

// Session schema mirrors the auth session store.
type sessionRecord struct {
	Slot      string    `gorm:"primaryKey;column:slot;size:32"`
	UserID    string    `gorm:"column:user_id;size:128"`
	Anonymous bool      `gorm:"column:anonymous"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "sessions" }

package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/pizzeria-console/internal/domains/auth/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/auth/ports"
)

// currentSlot is the only row the store uses.
const currentSlot = "current"

// SessionStore persists the console session in the embedded database.
type SessionStore struct {
	db *gorm.DB
}

// NewSessionStore wires a gorm-backed session store. Caller owns the DB
// lifecycle and runs the local migrations.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

type sessionRecord struct {
	Slot      string    `gorm:"primaryKey;column:slot;size:32"`
	UserID    string    `gorm:"column:user_id;size:128"`
	Anonymous bool      `gorm:"column:anonymous"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "sessions" }

var _ ports.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) Current(ctx context.Context) (domain.Session, error) {
	if err := s.ensureDB(); err != nil {
		return domain.Session{}, err
	}
	var rec sessionRecord
	err := s.db.WithContext(ctx).First(&rec, "slot = ?", currentSlot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Session{}, ports.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{UserID: rec.UserID, Anonymous: rec.Anonymous, CreatedAt: rec.CreatedAt}, nil
}

// Save replaces the stored session.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if session.IsZero() {
		return errors.New("session user id is required")
	}
	rec := sessionRecord{Slot: currentSlot, UserID: session.UserID, Anonymous: session.Anonymous, CreatedAt: session.CreatedAt}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "anonymous", "created_at", "updated_at"}),
		}).
		Create(&rec).Error
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "slot = ?", currentSlot).Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("sqlite session store not configured")
	}
	return nil
}

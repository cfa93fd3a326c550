package memory

import (
	"context"
	"sync"

	"github.com/Apurer/pizzeria-console/internal/domains/notifications/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/notifications/ports"
)

// Sink keeps written messages in memory.
type Sink struct {
	mu       sync.Mutex
	messages []domain.Message
	err      error
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

var _ ports.Sink = (*Sink)(nil)

// Write records msg, or returns the configured failure.
func (s *Sink) Write(ctx context.Context, msg domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msg)
	return nil
}

// FailWith makes subsequent writes return err; nil restores success.
func (s *Sink) FailWith(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Messages returns a copy of everything written so far.
func (s *Sink) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Message(nil), s.messages...)
}

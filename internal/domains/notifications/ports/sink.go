package ports

import (
	"context"

	"github.com/Apurer/pizzeria-console/internal/domains/notifications/domain"
)

// Sink accepts rendered messages for asynchronous delivery. A successful
// Write only means the message was handed over.
type Sink interface {
	Write(ctx context.Context, msg domain.Message) error
}

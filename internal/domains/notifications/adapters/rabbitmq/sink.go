package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Apurer/pizzeria-console/internal/domains/notifications/adapters/document"
	"github.com/Apurer/pizzeria-console/internal/domains/notifications/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/notifications/ports"
)

// DefaultRoutingKey is used when none is configured.
const DefaultRoutingKey = "mail.outbound"

// Publisher is the part of *amqp.Channel the sink needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Sink publishes messages to an exchange for a mail worker to deliver.
type Sink struct {
	pub        Publisher
	exchange   string
	routingKey string
	now        func() time.Time
}

// NewSink builds a Sink.
func NewSink(pub Publisher, exchange, routingKey string) *Sink {
	if routingKey == "" {
		routingKey = DefaultRoutingKey
	}
	return &Sink{pub: pub, exchange: exchange, routingKey: routingKey, now: time.Now}
}

var _ ports.Sink = (*Sink)(nil)

// Write publishes msg as a persistent JSON message.
func (s *Sink) Write(ctx context.Context, msg domain.Message) error {
	body, err := json.Marshal(document.ToRecord(msg))
	if err != nil {
		return fmt.Errorf("encode mail: %w", err)
	}
	err = s.pub.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    uuid.NewString(),
		Timestamp:    s.now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish mail: %w", err)
	}
	return nil
}

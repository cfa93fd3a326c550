package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/pizzeria-console/internal/domains/notifications/adapters/memory"
	"github.com/Apurer/pizzeria-console/internal/domains/notifications/domain"
	orderdomain "github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

func newService(t *testing.T, sink *memory.Sink, opts ...Option) *Service {
	t.Helper()
	renderer, err := domain.NewRenderer(domain.Branding{})
	require.NoError(t, err)
	return NewService(renderer, sink, opts...)
}

func order() *orderdomain.Order {
	return &orderdomain.Order{
		ID:            "o1",
		ConsumerName:  "Anna",
		ConsumerEmail: "anna@example.com",
		Items:         []string{"Salami"},
		Sum:           decimal.NewFromInt(300),
		Time:          time.Date(2024, 3, 8, 18, 30, 0, 0, time.UTC),
	}
}

func TestSendWritesOneMessagePerCall(t *testing.T) {
	sink := memory.NewSink()
	svc := newService(t, sink)
	ctx := context.Background()

	require.NoError(t, svc.SendConfirmation(ctx, order()))
	require.NoError(t, svc.SendRejection(ctx, order(), "закрыто"))
	require.NoError(t, svc.SendReceipt(ctx, order()))

	msgs := sink.Messages()
	require.Len(t, msgs, 3)
	require.Equal(t, domain.SubjectConfirmation, msgs[0].Subject)
	require.Equal(t, domain.SubjectRejection, msgs[1].Subject)
	require.Contains(t, msgs[1].Text, "закрыто")
	require.Equal(t, domain.SubjectReceipt, msgs[2].Subject)
	for _, m := range msgs {
		require.Equal(t, []string{"anna@example.com"}, m.To)
	}
}

func TestSendWritesUnusualRecipients(t *testing.T) {
	for _, email := range []string{"anna@localhost", "not-an-email", ""} {
		sink := memory.NewSink()
		odd := order()
		odd.ConsumerEmail = email

		require.NoError(t, newService(t, sink).SendConfirmation(context.Background(), odd), email)
		msgs := sink.Messages()
		require.Len(t, msgs, 1, email)
		require.Equal(t, []string{email}, msgs[0].To)
	}
}

func TestSendWithoutOrderFails(t *testing.T) {
	sink := memory.NewSink()
	err := newService(t, sink).SendReceipt(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrNoOrder)
	require.ErrorIs(t, err, result.ErrValidation)
	require.Empty(t, sink.Messages())
}

func TestSendSurfacesSinkFailure(t *testing.T) {
	sink := memory.NewSink()
	boom := errors.New("sink down")
	sink.FailWith(boom)

	err := newService(t, sink).SendConfirmation(context.Background(), order())
	require.ErrorIs(t, err, boom)
}

type slowSink struct{}

func (slowSink) Write(ctx context.Context, _ domain.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestSendTimesOut(t *testing.T) {
	renderer, err := domain.NewRenderer(domain.Branding{})
	require.NoError(t, err)
	svc := NewService(renderer, slowSink{}, WithTimeout(20*time.Millisecond))

	err = svc.SendRejection(context.Background(), order(), "")
	require.ErrorIs(t, err, result.ErrTimeout)
}

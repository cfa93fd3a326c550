package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	orderdocument "github.com/Apurer/pizzeria-console/internal/domains/orders/adapters/document"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	docmemory "github.com/Apurer/pizzeria-console/internal/platform/docstore/memory"
)

var msk = time.FixedZone("MSK", 3*60*60)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendConfirmation(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockNotifier) SendRejection(ctx context.Context, order *domain.Order, reason string) error {
	args := m.Called(ctx, order, reason)
	return args.Error(0)
}

// recordingRepo counts writes on top of a document repository.
type recordingRepo struct {
	ports.Repository
	mu    sync.Mutex
	saves []*domain.Order
	fail  error
}

func (r *recordingRepo) Save(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	r.saves = append(r.saves, order.Clone())
	r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	return r.Repository.Save(ctx, order)
}

func newRepo() *recordingRepo {
	return &recordingRepo{Repository: orderdocument.NewRepository(docmemory.NewStore(), msk)}
}

func newService(repo ports.Repository) *Service {
	return NewService(repo, WithTiming(Timing{Timeout: time.Second}))
}

func sampleOrder(id string) *domain.Order {
	at := time.Date(2024, 3, 8, 18, 30, 0, 0, msk)
	return &domain.Order{
		ID:            id,
		Sum:           decimal.NewFromInt(600),
		ConsumerName:  "Anna",
		ConsumerEmail: "anna@example.com",
		Items:         []string{"Salami", "Salami"},
		Time:          at,
		Slot:          domain.SlotOf(at),
	}
}

func seed(t *testing.T, repo ports.Repository, orders ...*domain.Order) {
	t.Helper()
	for _, o := range orders {
		if err := repo.Save(context.Background(), o); err != nil {
			t.Fatalf("seed %s: %v", o.ID, err)
		}
	}
}

func portsCommand(kind string) ports.TransitionCommand {
	return ports.TransitionCommand{Kind: ports.TransitionKind(kind), Order: sampleOrder("o1")}
}

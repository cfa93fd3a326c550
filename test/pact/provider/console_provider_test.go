//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	menudocument "github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/document"
	menuobs "github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/observability"
	"github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/photos/local"
	photomemory "github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/photos/memory"
	menuapp "github.com/Apurer/pizzeria-console/internal/domains/menu/application"
	menudomain "github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
	menuports "github.com/Apurer/pizzeria-console/internal/domains/menu/ports"
	notifmemory "github.com/Apurer/pizzeria-console/internal/domains/notifications/adapters/memory"
	notifapp "github.com/Apurer/pizzeria-console/internal/domains/notifications/application"
	notifdomain "github.com/Apurer/pizzeria-console/internal/domains/notifications/domain"
	orderdocument "github.com/Apurer/pizzeria-console/internal/domains/orders/adapters/document"
	ordersobs "github.com/Apurer/pizzeria-console/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/pizzeria-console/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	ordersports "github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	rejectionsmemory "github.com/Apurer/pizzeria-console/internal/domains/rejections/adapters/memory"
	rejectionsapp "github.com/Apurer/pizzeria-console/internal/domains/rejections/application"
	"github.com/Apurer/pizzeria-console/internal/platform/docstore"
	docmemory "github.com/Apurer/pizzeria-console/internal/platform/docstore/memory"
	consoleserver "github.com/Apurer/pizzeria-console/server"
	pacttest "github.com/Apurer/pizzeria-console/test/pact"
)

var msk = time.FixedZone("MSK", 3*60*60)

func TestStaffConsoleProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	reset := func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
		app.reset(t)
		return nil, nil
	}
	stateHandlers := models.StateHandlers{
		pacttest.StateOrdersBaseline: reset,
		pacttest.StateOrderMissing:   reset,
		pacttest.StateMenuItemAbsent: reset,
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedOrder(t)
			}
			return nil, nil
		},
		pacttest.StateMenuItemExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedItem(t)
			}
			return nil, nil
		},
		pacttest.StateReasonsSaved: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				_, err := app.reasons.Add(context.Background(), pacttest.ExampleReason)
				require.NoError(t, err)
			}
			return nil, nil
		},
	}

	err := verifier().VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

func verifier() *pactprovider.Verifier {
	return pactprovider.NewVerifier()
}

type contractProviderApp struct {
	docs    *docmemory.Store
	menu    menuports.Service
	orders  ordersports.Service
	reasons *rejectionsapp.Service
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	docs := docmemory.NewStore()
	source, err := local.NewSource(t.TempDir())
	require.NoError(t, err)
	menu := menuobs.New(menuapp.NewService(menudocument.NewRepository(docs), photomemory.NewStore(photomemory.WithResizePipeline()), source,
		menuapp.WithTiming(menuapp.Timing{Timeout: 5 * time.Second})))
	orders := ordersobs.New(ordersapp.NewService(orderdocument.NewRepository(docs, msk),
		ordersapp.WithTiming(ordersapp.Timing{Timeout: 5 * time.Second})))
	renderer, err := notifdomain.NewRenderer(notifdomain.DefaultBranding())
	require.NoError(t, err)
	notifier := notifapp.NewService(renderer, notifmemory.NewSink())
	reasons := rejectionsapp.NewService(rejectionsmemory.NewCache())

	handlers := consoleserver.Handlers{
		Menu: consoleserver.NewMenuAPI(menuapp.NewScreen(menu), menuapp.NewEditor(menu), source),
		Orders: consoleserver.NewOrderAPI(
			orders,
			ordersapp.NewOrchestrator(orders, ordersapp.NewTransitioner(orders, notifier)),
			ordersapp.NewEditor(orders, menu, msk),
			notifier,
		),
		Reasons: consoleserver.NewReasonAPI(reasons),
	}
	server := httptest.NewServer(consoleserver.NewRouter(handlers))
	t.Cleanup(server.Close)

	return &contractProviderApp{docs: docs, menu: menu, orders: orders, reasons: reasons, server: server}
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	for _, collection := range []string{docstore.CollectionOrders, docstore.CollectionMenu} {
		for _, id := range a.docs.Collection(collection) {
			require.NoError(t, a.docs.Delete(ctx, collection, id))
		}
	}
	for _, r := range a.reasons.ListOnce(ctx) {
		require.NoError(t, a.reasons.Delete(ctx, r.ID))
	}
}

func (a *contractProviderApp) seedOrder(t testing.TB) {
	t.Helper()
	order := (&ordersdomain.Order{
		ID:            pacttest.ExistingOrderID,
		Sum:           decimal.NewFromInt(600),
		ConsumerName:  "Anna",
		ConsumerEmail: "anna@example.com",
		ConsumerPhone: "+79990001122",
		Items:         []string{"Salami", "Salami"},
	}).WithTime(time.Date(2024, 3, 8, 18, 30, 0, 0, msk))
	require.NoError(t, a.orders.Save(context.Background(), order))
}

func (a *contractProviderApp) seedItem(t testing.TB) {
	t.Helper()
	_, err := a.menu.Save(context.Background(), &menudomain.Item{
		ID:          pacttest.ExistingItemID,
		Name:        "Salami",
		Description: "tomato, mozzarella, salami",
		Price:       decimal.NewFromInt(300),
		IsAvailable: true,
	})
	require.NoError(t, err)
}

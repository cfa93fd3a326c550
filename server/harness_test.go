package consoleserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	authmemory "github.com/Apurer/pizzeria-console/internal/domains/auth/adapters/memory"
	authapp "github.com/Apurer/pizzeria-console/internal/domains/auth/application"
	menudocument "github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/document"
	"github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/photos/local"
	photomemory "github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/photos/memory"
	menuapp "github.com/Apurer/pizzeria-console/internal/domains/menu/application"
	menudomain "github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
	notifmemory "github.com/Apurer/pizzeria-console/internal/domains/notifications/adapters/memory"
	notifapp "github.com/Apurer/pizzeria-console/internal/domains/notifications/application"
	notifdomain "github.com/Apurer/pizzeria-console/internal/domains/notifications/domain"
	orderdocument "github.com/Apurer/pizzeria-console/internal/domains/orders/adapters/document"
	ordersapp "github.com/Apurer/pizzeria-console/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	rejectionsmemory "github.com/Apurer/pizzeria-console/internal/domains/rejections/adapters/memory"
	rejectionsapp "github.com/Apurer/pizzeria-console/internal/domains/rejections/application"
	shopdocument "github.com/Apurer/pizzeria-console/internal/domains/shop/adapters/document"
	shopapp "github.com/Apurer/pizzeria-console/internal/domains/shop/application"
	docmemory "github.com/Apurer/pizzeria-console/internal/platform/docstore/memory"
)

var msk = time.FixedZone("MSK", 3*60*60)

type harness struct {
	router  *gin.Engine
	docs    *docmemory.Store
	photos  *photomemory.Store
	mail    *notifmemory.Sink
	menu    *menuapp.Service
	orders  *ordersapp.Service
	shop    *shopapp.Service
	reasons *rejectionsapp.Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	docs := docmemory.NewStore()
	photos := photomemory.NewStore(photomemory.WithResizePipeline())
	source, err := local.NewSource(t.TempDir())
	require.NoError(t, err)
	menu := menuapp.NewService(menudocument.NewRepository(docs), photos, source,
		menuapp.WithTiming(menuapp.Timing{Timeout: time.Second}))

	orders := ordersapp.NewService(orderdocument.NewRepository(docs, msk),
		ordersapp.WithTiming(ordersapp.Timing{Timeout: time.Second}))
	renderer, err := notifdomain.NewRenderer(notifdomain.DefaultBranding())
	require.NoError(t, err)
	mail := notifmemory.NewSink()
	notifier := notifapp.NewService(renderer, mail, notifapp.WithTimeout(time.Second))
	orchestrator := ordersapp.NewOrchestrator(orders, ordersapp.NewTransitioner(orders, notifier))

	auth := authapp.NewService(authmemory.NewIdentityProvider(), authmemory.NewSessionStore())
	shop := shopapp.NewService(shopdocument.NewStore(docs, shopdocument.DefaultShopID))
	reasons := rejectionsapp.NewService(rejectionsmemory.NewCache())

	router := NewRouter(Handlers{
		Session: NewSessionAPI(auth),
		Shop:    NewShopAPI(shopapp.NewDashboard(shop, auth)),
		Menu:    NewMenuAPI(menuapp.NewScreen(menu), menuapp.NewEditor(menu), source),
		Orders:  NewOrderAPI(orders, orchestrator, ordersapp.NewEditor(orders, menu, msk), notifier),
		Reasons: NewReasonAPI(reasons),
	})
	return &harness{
		router:  router,
		docs:    docs,
		photos:  photos,
		mail:    mail,
		menu:    menu,
		orders:  orders,
		shop:    shop,
		reasons: reasons,
	}
}

func (h *harness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *harness) seedItem(t *testing.T, id, name string, price int64) *menudomain.Item {
	t.Helper()
	item := &menudomain.Item{ID: id, Name: name, Price: decimal.NewFromInt(price), IsAvailable: true}
	saved, err := h.menu.Save(context.Background(), item)
	require.NoError(t, err)
	return saved
}

func (h *harness) seedOrder(t *testing.T, id string, items ...string) *ordersdomain.Order {
	t.Helper()
	order := (&ordersdomain.Order{
		ID:            id,
		Sum:           decimal.NewFromInt(600),
		ConsumerName:  "Anna",
		ConsumerEmail: "anna@example.com",
		ConsumerPhone: "+79990001122",
		Items:         items,
	}).WithTime(time.Date(2024, 3, 8, 18, 30, 0, 0, msk))
	require.NoError(t, h.orders.Save(context.Background(), order))
	return order
}

func (h *harness) storedOrder(t *testing.T, id string) *ordersdomain.Order {
	t.Helper()
	order, err := h.orders.Get(context.Background(), id)
	require.NoError(t, err)
	return order
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type problem struct {
	Type       string         `json:"type"`
	Status     int            `json:"status"`
	Extensions map[string]any `json:"extensions"`
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	requireStatus(t, h.do(t, http.MethodGet, "/healthz", nil), http.StatusNoContent)
}

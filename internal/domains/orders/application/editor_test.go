package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	menudomain "github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

type staticMenu struct {
	items []*menudomain.Item
	err   error
}

func (m staticMenu) ListItems(context.Context) ([]*menudomain.Item, error) { return m.items, m.err }

var (
	salami     = &menudomain.Item{ID: "p1", Name: "Salami", Price: decimal.NewFromInt(300)}
	margherita = &menudomain.Item{ID: "p2", Name: "Margherita", Price: decimal.NewFromInt(250)}
)

func TestEditorAddAddRemoveScenario(t *testing.T) {
	editor := NewEditor(newService(newRepo()), staticMenu{}, msk)
	order := &domain.Order{ID: "o1", Sum: decimal.Zero}

	once := editor.AddItem(salami, order)
	require.True(t, once.IsSuccess())
	require.Equal(t, []string{"Salami"}, once.Value.Items)
	require.True(t, once.Value.Sum.Equal(decimal.NewFromInt(300)))

	twice := editor.AddItem(salami, once.Value)
	require.Equal(t, []string{"Salami", "Salami"}, twice.Value.Items)
	require.True(t, twice.Value.Sum.Equal(decimal.NewFromInt(600)))

	back := editor.RemoveItem("Salami", []*menudomain.Item{salami}, twice.Value)
	require.True(t, back.IsSuccess())
	require.Equal(t, []string{"Salami"}, back.Value.Items)
	require.True(t, back.Value.Sum.Equal(decimal.NewFromInt(300)))
}

func TestEditorRemoveOneOfDuplicates(t *testing.T) {
	editor := NewEditor(newService(newRepo()), staticMenu{}, msk)
	order := &domain.Order{ID: "o1", Items: []string{"Margherita", "Margherita", "Salami"}, Sum: decimal.NewFromInt(800)}

	res := editor.RemoveItem("Margherita", []*menudomain.Item{salami, margherita}, order)
	require.True(t, res.IsSuccess())
	require.Equal(t, []string{"Margherita", "Salami"}, res.Value.Items)
	require.True(t, res.Value.Sum.Equal(decimal.NewFromInt(550)))
}

func TestEditorRemoveFailsWhenAbsent(t *testing.T) {
	editor := NewEditor(newService(newRepo()), staticMenu{}, msk)
	order := &domain.Order{ID: "o1", Items: []string{"Salami"}, Sum: decimal.NewFromInt(300)}

	notOnMenu := editor.RemoveItem("Salami", []*menudomain.Item{margherita}, order)
	require.True(t, notOnMenu.IsFailed())
	require.Equal(t, result.KindValidation, notOnMenu.Kind)

	notInOrder := editor.RemoveItem("Margherita", []*menudomain.Item{margherita}, order)
	require.True(t, notInOrder.IsFailed())
	require.ErrorIs(t, notInOrder.Err, domain.ErrItemNotInOrder)
}

func TestEditorLoadAll(t *testing.T) {
	repo := newRepo()
	seed(t, repo, sampleOrder("o1"))
	editor := NewEditor(newService(repo), staticMenu{items: []*menudomain.Item{salami, margherita}}, msk)

	loaded := editor.LoadAll(context.Background(), "o1")
	require.True(t, loaded.IsSuccess())
	require.Len(t, loaded.Value.Menu, 2)
	require.Equal(t, "o1", loaded.Value.Order.ID)

	missing := editor.LoadAll(context.Background(), "nope")
	require.True(t, missing.IsFailed())
	require.ErrorIs(t, missing.Err, ports.ErrNotFound)

	broken := NewEditor(newService(repo), staticMenu{err: errors.New("menu offline")}, msk).LoadAll(context.Background(), "o1")
	require.True(t, broken.IsFailed())
}

func TestEditorSaveRecomposesSlot(t *testing.T) {
	repo := newRepo()
	order := sampleOrder("o1")
	seed(t, repo, order)
	editor := NewEditor(newService(repo), staticMenu{}, msk)

	edited := order.Clone()
	edited.Slot = domain.Slot{Hour: "20-15", Day: "09-03-2024"}
	saved := editor.Save(context.Background(), edited)
	require.True(t, saved.IsSuccess())
	require.True(t, saved.Value.Time.Equal(time.Date(2024, 3, 9, 20, 15, 0, 0, msk)))

	stored, err := repo.Get(context.Background(), "o1")
	require.NoError(t, err)
	require.Equal(t, "20-15 09-03-2024", domain.FormatTime(stored.Time))
}

func TestEditorSaveRejectsBadSlot(t *testing.T) {
	repo := newRepo()
	editor := NewEditor(newService(repo), staticMenu{}, msk)

	order := sampleOrder("o1")
	order.Slot.Hour = "25-99"
	res := editor.Save(context.Background(), order)
	require.True(t, res.IsFailed())
	require.Equal(t, result.KindValidation, res.Kind)
	require.Empty(t, repo.saves)
}

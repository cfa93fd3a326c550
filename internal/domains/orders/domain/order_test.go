package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

func TestTransitions(t *testing.T) {
	fresh := &Order{ID: "o1"}
	require.Equal(t, StateNew, fresh.State())

	confirmed := fresh.Confirm()
	require.Equal(t, StateConfirmed, confirmed.State())
	require.Equal(t, StateNew, fresh.State(), "transitions copy")

	rejected := fresh.Reject()
	require.Equal(t, StateRejected, rejected.State())
	require.True(t, rejected.IsCompleted)
	require.False(t, rejected.IsConfirmed)

	done := confirmed.MarkCompleted()
	require.Equal(t, StateCompleted, done.State())
}

func TestCompleteThenReopenKeepsConfirmation(t *testing.T) {
	for _, confirmed := range []bool{true, false} {
		order := &Order{ID: "o1", IsConfirmed: confirmed}
		reopened := order.MarkCompleted().MarkNew()
		require.False(t, reopened.IsCompleted)
		require.Equal(t, confirmed, reopened.IsConfirmed)
	}
}

func TestAddAndRemoveItems(t *testing.T) {
	price := decimal.NewFromInt(300)
	order := &Order{ID: "o1", Sum: decimal.Zero}

	once := order.AddItem("Salami", price)
	require.Equal(t, []string{"Salami"}, once.Items)
	require.True(t, once.Sum.Equal(decimal.NewFromInt(300)))

	twice := once.AddItem("Salami", price)
	require.Equal(t, []string{"Salami", "Salami"}, twice.Items)
	require.True(t, twice.Sum.Equal(decimal.NewFromInt(600)))

	back, err := twice.RemoveItem("Salami", price)
	require.NoError(t, err)
	require.Equal(t, []string{"Salami"}, back.Items)
	require.True(t, back.Sum.Equal(decimal.NewFromInt(300)))
	require.Len(t, twice.Items, 2, "source order untouched")

	_, err = back.RemoveItem("Pepperoni", price)
	require.ErrorIs(t, err, ErrItemNotInOrder)
	require.ErrorIs(t, err, result.ErrValidation)
}

func TestAddKeepsItemsSorted(t *testing.T) {
	order := (&Order{}).AddItem("Salami", decimal.NewFromInt(1)).AddItem("Margherita", decimal.NewFromInt(1))
	require.Equal(t, []string{"Margherita", "Salami"}, order.Items)
}

func TestReplaceAndWithout(t *testing.T) {
	a, b := &Order{ID: "a"}, &Order{ID: "b"}
	updated := b.Confirm()
	held := Replace([]*Order{a, b}, updated)
	require.Same(t, a, held[0])
	require.Same(t, updated, held[1])
	require.Equal(t, []*Order{a}, Without(held, "b"))
}

func TestSlotRoundTrip(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	when := time.Date(2024, time.March, 8, 18, 30, 0, 0, loc)

	slot := SlotOf(when)
	require.Equal(t, Slot{Hour: "18-30", Day: "08-03-2024"}, slot)
	require.Equal(t, "18-30 08-03-2024", FormatTime(when))

	back, err := slot.Compose(loc)
	require.NoError(t, err)
	require.True(t, back.Equal(when))

	_, err = Slot{Hour: "6pm", Day: "08-03-2024"}.Compose(loc)
	require.ErrorIs(t, err, ErrInvalidTime)
}

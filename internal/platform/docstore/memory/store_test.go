package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/pizzeria-console/internal/platform/docstore"
)

type record struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
	Time      int64  `json:"time"`
}

func TestFindFiltersAndOrdersDescending(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Set(ctx, "order", "a", record{ID: "a", Completed: false, Time: 100}))
	require.NoError(t, store.Set(ctx, "order", "b", record{ID: "b", Completed: true, Time: 300}))
	require.NoError(t, store.Set(ctx, "order", "c", record{ID: "c", Completed: false, Time: 200}))

	docs, err := store.Find(ctx, "order", docstore.Query{
		Where:      []docstore.Filter{{Field: "completed", Value: false}},
		OrderBy:    "time",
		Descending: true,
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "c", docs[0].ID())
	require.Equal(t, "a", docs[1].ID())

	var rec record
	require.NoError(t, docs[0].DataTo(&rec))
	require.Equal(t, int64(200), rec.Time)
}

func TestGetMissingAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.Get(ctx, "pizza", "nope")
	require.ErrorIs(t, err, docstore.ErrNotFound)

	require.NoError(t, store.Set(ctx, "pizza", "p1", map[string]any{"name": "Salami"}))
	require.Equal(t, []string{"p1"}, store.Collection("pizza"))
	require.NoError(t, store.Delete(ctx, "pizza", "p1"))
	require.NoError(t, store.Delete(ctx, "pizza", "p1"))
	require.Empty(t, store.Collection("pizza"))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, NewStore().Set(ctx, "main", "x", map[string]bool{"open": true}), context.Canceled)
}

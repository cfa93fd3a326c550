package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/pizzeria-console/internal/domains/menu/domain"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

func TestScreenToggleTwiceRestoresAndPersistsTwice(t *testing.T) {
	svc, repo, _, _ := newTestService(t, fastTiming())
	screen := NewScreen(svc)
	ctx := context.Background()

	item := salami()
	other := &domain.Item{ID: "p2", Name: "Margherita", IsAvailable: true}
	held := []*domain.Item{item, other}

	first := screen.ToggleAvailability(ctx, held[0], held)
	require.True(t, first.IsSuccess())
	require.False(t, first.Value[0].IsAvailable)
	require.Same(t, other, first.Value[1])

	second := screen.ToggleAvailability(ctx, first.Value[0], first.Value)
	require.True(t, second.IsSuccess())
	require.True(t, second.Value[0].IsAvailable)

	require.Len(t, repo.saves, 2)
	require.False(t, repo.saves[0].IsAvailable)
	require.True(t, repo.saves[1].IsAvailable)
	require.True(t, item.IsAvailable, "held item is not mutated in place")
}

func TestScreenToggleFailureLeavesHeldList(t *testing.T) {
	svc, repo, _, _ := newTestService(t, fastTiming())
	repo.fail = errors.New("offline")
	screen := NewScreen(svc)

	held := []*domain.Item{salami()}
	res := screen.ToggleAvailability(context.Background(), held[0], held)
	require.True(t, res.IsFailed())
	require.Equal(t, result.KindAdapter, res.Kind)
	require.True(t, held[0].IsAvailable)
}

func TestScreenDeleteFiltersHeldList(t *testing.T) {
	svc, _, _, _ := newTestService(t, fastTiming())
	screen := NewScreen(svc)
	ctx := context.Background()
	_, err := svc.Save(ctx, salami())
	require.NoError(t, err)

	held := []*domain.Item{salami(), {ID: "p2", Name: "Margherita"}}
	res := screen.Delete(ctx, "p1", held)
	require.True(t, res.IsSuccess())
	require.Len(t, res.Value, 1)
	require.Equal(t, "p2", res.Value[0].ID)

	all := screen.ListAll(ctx)
	require.True(t, all.IsSuccess())
	require.Empty(t, all.Value)
}

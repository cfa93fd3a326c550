package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/pizzeria-console/internal/domains/rejections/adapters/memory"
	"github.com/Apurer/pizzeria-console/internal/domains/rejections/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/rejections/ports"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type brokenCache struct {
	ports.Cache
}

func (brokenCache) List(context.Context) ([]domain.Reason, error) {
	return nil, errors.New("disk full")
}

func (brokenCache) Watch(context.Context) (<-chan []domain.Reason, error) {
	return nil, errors.New("disk full")
}

func next(t *testing.T, ch <-chan []domain.Reason) []domain.Reason {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "stream closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("no value on stream")
		return nil
	}
}

func TestAddListDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewCache(), WithLogger(quiet))

	added, err := svc.Add(ctx, " нет теста ")
	require.NoError(t, err)
	require.NotEqual(t, domain.NewReasonID, added.ID)
	require.Equal(t, []domain.Reason{added}, svc.ListOnce(ctx))

	require.NoError(t, svc.Delete(ctx, added.ID))
	require.Empty(t, svc.ListOnce(ctx))
}

func TestAddRejectsBlank(t *testing.T) {
	_, err := NewService(memory.NewCache(), WithLogger(quiet)).Add(context.Background(), "")
	require.ErrorIs(t, err, result.ErrValidation)
}

func TestReadsDegradeToEmpty(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := NewService(brokenCache{}, WithLogger(quiet))

	once := svc.ListOnce(ctx)
	require.NotNil(t, once)
	require.Empty(t, once)

	live := svc.ListLive(ctx)
	require.Empty(t, next(t, live))
	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-live
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestListLiveFollowsChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := NewService(memory.NewCache(), WithLogger(quiet))

	live := svc.ListLive(ctx)
	require.Empty(t, next(t, live))

	first, err := svc.Add(ctx, "печь остыла")
	require.NoError(t, err)
	require.Equal(t, []domain.Reason{first}, next(t, live))
}

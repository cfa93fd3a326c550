package broadcast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHubDeliversOnlyLatestValue(t *testing.T) {
	hub := NewHub[int]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := hub.Subscribe(ctx)
	hub.Publish(1)
	hub.Publish(2)
	hub.Publish(3)

	select {
	case v := <-ch:
		require.Equal(t, 3, v)
	case <-time.After(time.Second):
		t.Fatal("no value delivered")
	}
	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %d", v)
	default:
	}
}

func TestHubDoesNotReplayToLateSubscribers(t *testing.T) {
	hub := NewHub[string]()
	hub.Publish("before")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := hub.Subscribe(ctx)

	select {
	case v := <-ch:
		t.Fatalf("late subscriber received %q", v)
	default:
	}
}

func TestHubClosesOnCancel(t *testing.T) {
	hub := NewHub[int]()
	ctx, cancel := context.WithCancel(context.Background())
	ch := hub.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, 0, hub.Len())
}

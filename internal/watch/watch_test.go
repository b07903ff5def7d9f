package watch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishCoalesces(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("alice")
	defer cancel()

	for i := 0; i < 5; i++ {
		h.Publish("alice")
	}
	h.Publish("bob")

	select {
	case <-ch:
	default:
		t.Fatal("expected a pending signal")
	}
	select {
	case <-ch:
		t.Fatal("signals should coalesce into one")
	default:
	}
}

func TestHubCancel(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("alice")
	require.Equal(t, 1, h.Subscribers("alice"))

	cancel()
	cancel()

	assert.Equal(t, 0, h.Subscribers("alice"))
	_, ok := <-ch
	assert.False(t, ok, "channel should be closed")

	assert.NotPanics(t, func() { h.Publish("alice") })
}

func TestDebounceCollapsesBursts(t *testing.T) {
	in := make(chan struct{})
	var calls atomic.Int32
	done := make(chan error, 1)

	go func() {
		done <- Debounce(context.Background(), in, 20*time.Millisecond, func() { calls.Add(1) })
	}()

	for i := 0; i < 10; i++ {
		in <- struct{}{}
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	in <- struct{}{}
	close(in)
	require.NoError(t, <-done)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDebounceStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- Debounce(ctx, in, time.Hour, func() { t.Error("fn must not run") })
	}()
	in <- struct{}{}
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
}

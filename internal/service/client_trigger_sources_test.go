package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── ChannelSource ───────────────────────────────────────────────────────────

func TestChannelSource_Forwards(t *testing.T) {
	in := make(chan any, 2)
	in <- "a"
	in <- "b"
	close(in)

	out := NewChannelSource(in).Subscribe(context.Background(), "ignored")

	assert.Equal(t, "a", receive(t, out))
	assert.Equal(t, "b", receive(t, out))

	_, ok := <-out
	assert.False(t, ok, "closed input closes the subscription")
}

func TestChannelSource_ClosesOnCancel(t *testing.T) {
	in := make(chan any)

	ctx, cancel := context.WithCancel(context.Background())
	out := NewChannelSource(in).Subscribe(ctx, "")
	cancel()

	select {
	case _, ok := <-out:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not closed")
	}
}

// ── PollingSource ───────────────────────────────────────────────────────────

func TestPollingSource_PublishesPolledValues(t *testing.T) {
	var calls atomic.Int32
	source := NewPollingSource(func(context.Context) (any, error) {
		n := calls.Add(1)
		if n == 2 {
			return nil, errors.New("unavailable")
		}
		return int(n), nil
	}, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	values := source.Subscribe(ctx, "")
	source.Start(ctx)
	defer source.Stop()

	assert.Equal(t, 1, receive(t, values))
	// the failed second poll publishes nothing
	assert.Equal(t, 3, receive(t, values))
}

func TestPollingSource_StopEndsPolling(t *testing.T) {
	var calls atomic.Int32
	source := NewPollingSource(func(context.Context) (any, error) {
		calls.Add(1)
		return "v", nil
	}, 5*time.Millisecond, nil)

	source.Start(context.Background())
	require.Eventually(t, func() bool { return calls.Load() > 0 }, 2*time.Second, 5*time.Millisecond)

	source.Stop()
	stopped := calls.Load()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}

func TestPollingSource_DrivesSynchronizer(t *testing.T) {
	source := NewPollingSource(func(context.Context) (any, error) { return "same", nil }, 5*time.Millisecond, nil)

	routed := make(chan any, 10)
	s, _, _ := newTestSynchronizer(t, SynchronizerConfig{
		Trigger: &TriggerConfig{
			Source:         source,
			CustomCallback: func(_ context.Context, v any) { routed <- v },
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = s.Watch(ctx) }()
	// let Watch subscribe before the first tick
	require.Eventually(t, func() bool { return source.hub.subscribers(pollingKey) == 1 }, 2*time.Second, time.Millisecond)

	source.Start(ctx)
	defer source.Stop()

	assert.Equal(t, "same", receive(t, routed))

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, routed, "repeated values are deduplicated")
}

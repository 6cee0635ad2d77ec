package hub

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
	failWith error
	// when set, WriteMessage blocks until it is closed
	stall chan struct{}
}

func (c *fakeClient) WriteMessage(_ int, data []byte) error {
	if c.stall != nil {
		<-c.stall
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return c.failWith
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *fakeClient) ReadMessage() (int, []byte, error) {
	return 0, nil, errors.New("not implemented")
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) received() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.messages...)
}

func (c *fakeClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := New()
	go h.Run(ctx)
	return h
}

func TestHubBroadcast(t *testing.T) {
	h := startHub(t)

	good := &fakeClient{}
	bad := &fakeClient{failWith: errors.New("broken pipe")}
	h.Register(good)
	h.Register(bad)
	require.Eventually(t, func() bool { return h.Len() == 2 }, time.Second, 5*time.Millisecond)

	h.Broadcast([]byte(`{"total":1}`))

	require.Eventually(t, func() bool { return len(good.received()) == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, `{"total":1}`, string(good.received()[0]))
	require.Eventually(t, bad.isClosed, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, 5*time.Millisecond)

	h.Unregister(good)
	require.Eventually(t, good.isClosed, time.Second, 5*time.Millisecond)
	require.Zero(t, h.Len())
}

func TestHubSendsLatestOnRegister(t *testing.T) {
	h := startHub(t)

	h.Broadcast([]byte(`{"total":1}`))
	h.Broadcast([]byte(`{"total":2}`))

	late := &fakeClient{}
	h.Register(late)
	require.Eventually(t, func() bool { return len(late.received()) == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, `{"total":2}`, string(late.received()[0]))

	h.Broadcast([]byte(`{"total":3}`))
	require.Eventually(t, func() bool { return len(late.received()) == 2 }, time.Second, 5*time.Millisecond)
	require.Equal(t, `{"total":3}`, string(late.received()[1]))
}

func TestHubDropsStuckViewerWithoutBlockingBroadcast(t *testing.T) {
	h := startHub(t)

	stuck := &fakeClient{stall: make(chan struct{})}
	defer close(stuck.stall)
	healthy := &fakeClient{}
	h.Register(stuck)
	h.Register(healthy)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.Broadcast([]byte(`{}`))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked on a viewer that does not read")
	}

	require.Eventually(t, stuck.isClosed, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, 5*time.Millisecond)

	// the hub keeps serving registrations
	another := &fakeClient{}
	h.Register(another)
	require.Eventually(t, func() bool { return h.Len() == 2 }, time.Second, 5*time.Millisecond)
}

func TestHubClosesViewersOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	h := New()
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	c := &fakeClient{}
	h.Register(c)
	cancel()
	<-done

	require.True(t, c.isClosed())
	require.Zero(t, h.Len())
}

func TestHubAfterShutdownDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := New()
	cancel()
	h.Run(ctx)

	c := &fakeClient{}
	h.Register(c)
	h.Unregister(c)
	h.Broadcast([]byte("late"))

	require.True(t, c.isClosed())
	require.Empty(t, c.received())
}

package resolver

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls   atomic.Int32
	clients map[string]*Descriptor
	delay   time.Duration
}

func (c *countingSource) FindClientByID(_ context.Context, clientID string) (*Descriptor, error) {
	c.calls.Add(1)
	time.Sleep(c.delay)
	return c.clients[clientID], nil
}

func TestCachedSource(t *testing.T) {
	next := &countingSource{clients: map[string]*Descriptor{"A": {ClientID: "A"}}}
	c := NewCachedSource(next, time.Minute)
	ctx := context.Background()

	for range 3 {
		d, err := c.FindClientByID(ctx, "A")
		require.NoError(t, err)
		require.NotNil(t, d)
	}
	assert.Equal(t, int32(1), next.calls.Load())

	// Absent results are always asked again.
	for range 2 {
		d, err := c.FindClientByID(ctx, "B")
		require.NoError(t, err)
		assert.Nil(t, d)
	}
	assert.Equal(t, int32(3), next.calls.Load())

	c.Invalidate("A")
	_, err := c.FindClientByID(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, int32(4), next.calls.Load())

	assert.Equal(t, "cached", c.Name())
}

func TestCachedSourceCollapsesConcurrentLookups(t *testing.T) {
	next := &countingSource{
		clients: map[string]*Descriptor{"A": {ClientID: "A"}},
		delay:   50 * time.Millisecond,
	}
	c := NewCachedSource(next, time.Minute)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := c.FindClientByID(context.Background(), "A")
			assert.NoError(t, err)
			assert.NotNil(t, d)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, next.calls.Load(), int32(2))
}

func TestCachedSourceName(t *testing.T) {
	assert.Equal(t, "persisted_cached", NewCachedSource(NewPersistedSource(nil, nil), time.Minute).Name())
}

type blockingSource struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	calls   atomic.Int32
	ctxErr  error
}

func newBlockingSource() *blockingSource {
	return &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
}

func (b *blockingSource) FindClientByID(ctx context.Context, clientID string) (*Descriptor, error) {
	b.calls.Add(1)
	b.once.Do(func() { close(b.started) })
	<-b.release
	b.ctxErr = ctx.Err()
	return &Descriptor{ClientID: clientID}, nil
}

func TestCachedSourceCancelledCallerDoesNotFailOthers(t *testing.T) {
	next := newBlockingSource()
	c := NewCachedSource(next, time.Minute)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.FindClientByID(firstCtx, "A")
		firstErr <- err
	}()
	<-next.started

	type result struct {
		d   *Descriptor
		err error
	}
	second := make(chan result, 1)
	go func() {
		d, err := c.FindClientByID(context.Background(), "A")
		second <- result{d, err}
	}()

	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	close(next.release)
	res := <-second
	require.NoError(t, res.err)
	require.NotNil(t, res.d)
	assert.Equal(t, "A", res.d.ClientID)
	require.NoError(t, next.ctxErr)

	// the shared lookup filled the cache despite the first caller leaving
	_, err := c.FindClientByID(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, int32(1), next.calls.Load())
}

func TestCachedSourceInvalidateDuringLookup(t *testing.T) {
	next := newBlockingSource()
	c := NewCachedSource(next, time.Minute)

	done := make(chan *Descriptor, 1)
	go func() {
		d, err := c.FindClientByID(context.Background(), "A")
		assert.NoError(t, err)
		done <- d
	}()
	<-next.started

	c.Invalidate("A")
	close(next.release)
	require.NotNil(t, <-done)

	_, err := c.FindClientByID(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.calls.Load())
}

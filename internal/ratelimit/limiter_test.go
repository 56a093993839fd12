package ratelimit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore(time.Hour)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLimiterEleventhRejected(t *testing.T) {
	l, err := New(newTestStore(t), 10, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 10, l.Limit())
	assert.Equal(t, 15*time.Minute, l.Window())

	ctx := context.Background()
	for i := 1; i <= 10; i++ {
		res, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d", i)
		assert.Equal(t, 10-i, res.Remaining)
		assert.Equal(t, 10, res.Limit)
	}

	res, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.True(t, res.ResetAfter > 0 && res.ResetAfter <= 15*time.Minute)

	res, err = l.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "other clients are unaffected")
}

func TestLimiterWindowResets(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	l, err := New(store, 2, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, _ = l.Allow(ctx, "k")
	}
	res, _ := l.Allow(ctx, "k")
	assert.False(t, res.Allowed)

	now = now.Add(time.Minute)
	res, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
	assert.Equal(t, time.Minute, res.ResetAfter)
}

func TestLimiterConcurrentExactlyLimit(t *testing.T) {
	l, err := New(newTestStore(t), 10, time.Minute)
	require.NoError(t, err)

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if res, _ := l.Allow(context.Background(), "burst"); res.Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), allowed.Load())
}

type failingStore struct{}

func (failingStore) Increment(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("connection refused")
}

func TestLimiterFailsOpen(t *testing.T) {
	l, err := New(failingStore{}, 10, time.Minute)
	require.NoError(t, err)

	res, err := l.Allow(context.Background(), "k")
	assert.True(t, errors.Is(err, ErrStore))
	assert.True(t, res.Allowed)
}

func TestNewRejectsBadSettings(t *testing.T) {
	_, err := New(nil, 10, time.Minute)
	assert.Error(t, err)
	_, err = New(failingStore{}, 0, time.Minute)
	assert.Error(t, err)
	_, err = New(failingStore{}, 10, 0)
	assert.Error(t, err)
}

func TestMemoryStorePurge(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	store.now = func() time.Time { return now }

	_, _, _ = store.Increment(context.Background(), "a", time.Second)
	_, _, _ = store.Increment(context.Background(), "b", time.Hour)
	require.Equal(t, 2, store.Len())

	now = now.Add(2 * time.Second)
	store.purge()
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreCloseIdempotent(t *testing.T) {
	s := NewMemoryStore(time.Millisecond)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

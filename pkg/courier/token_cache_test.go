package courier

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

func newTestCache(now *time.Time) *TokenCache {
	c := NewTokenCache()
	c.now = func() time.Time { return *now }
	return c
}

func TestTokenCache_ReusesUntilMargin(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := newTestCache(&now)

	calls := 0
	fetch := func(ctx context.Context) (string, time.Time, error) {
		calls++
		return "token-" + string(rune('0'+calls)), now.Add(5 * time.Minute), nil
	}

	token, err := cache.Get(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)

	// 4 minutes later: 60s left is not more than the margin
	now = now.Add(3*time.Minute + 59*time.Second)
	token, err = cache.Get(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
	assert.Equal(t, 1, calls)

	now = now.Add(1 * time.Second)
	token, err = cache.Get(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)
	assert.Equal(t, 2, calls)
}

func TestTokenCache_FetchErrorKeepsNothing(t *testing.T) {
	now := time.Now()
	cache := newTestCache(&now)

	_, err := cache.Get(context.Background(), func(ctx context.Context) (string, time.Time, error) {
		return "", time.Time{}, errors.New("login failed")
	})
	assert.Error(t, err)

	token, err := cache.Get(context.Background(), func(ctx context.Context) (string, time.Time, error) {
		return "fresh", now.Add(time.Hour), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
}

func TestTokenCache_Invalidate(t *testing.T) {
	now := time.Now()
	cache := newTestCache(&now)

	calls := 0
	fetch := func(ctx context.Context) (string, time.Time, error) {
		calls++
		return "t", now.Add(time.Hour), nil
	}

	_, _ = cache.Get(context.Background(), fetch)
	cache.Invalidate()
	_, _ = cache.Get(context.Background(), fetch)
	assert.Equal(t, 2, calls)
}

func TestTokenCache_ConcurrentCallersShareOneRefresh(t *testing.T) {
	cache := NewTokenCache()

	var calls int32
	fetch := func(ctx context.Context) (string, time.Time, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return "shared", time.Now().Add(time.Hour), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := cache.Get(context.Background(), fetch)
			assert.NoError(t, err)
			assert.Equal(t, "shared", token)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

package courier

import (
	"context"
	"sync"
	"time"
)

// DefaultRefreshMargin is how much validity a cached token must still have to be reused.
const DefaultRefreshMargin = 60 * time.Second

// TokenFetcher obtains a fresh token and its expiry.
type TokenFetcher func(ctx context.Context) (token string, expiresAt time.Time, err error)

// TokenCache holds one bearer token and its expiry. It is safe for concurrent use;
// at most one refresh runs at a time and concurrent callers wait for its result.
type TokenCache struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time

	margin time.Duration
	now    func() time.Time
}

func NewTokenCache() *TokenCache {
	return &TokenCache{
		margin: DefaultRefreshMargin,
		now:    time.Now,
	}
}

// Get returns the cached token, refreshing through fetch when it is missing or
// has less than the refresh margin left.
func (c *TokenCache) Get(ctx context.Context, fetch TokenFetcher) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Add(c.margin).Before(c.expiresAt) {
		return c.token, nil
	}

	token, expiresAt, err := fetch(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.expiresAt = expiresAt
	return token, nil
}

// Invalidate drops the cached token, e.g. after the upstream answered 401.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.token = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}

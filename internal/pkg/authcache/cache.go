package authcache

import (
	"context"
	"sync"
	"time"
)

// TokenTTL is how long a verified bearer token stays cached before the
// verifier is consulted again.
const TokenTTL = 300 * time.Second

type tokenEntry struct {
	claims    map[string]interface{}
	expiresAt time.Time
}

// TokenCache memoizes token verification results. Verification of the same
// token string within the TTL window returns the cached claims; concurrent
// first lookups for a token are coalesced so the verifier runs once.
type TokenCache struct {
	mu      sync.Mutex
	entries map[string]*tokenEntry
	pending map[string]*sync.WaitGroup
	ttl     time.Duration
	now     func() time.Time
}

func NewTokenCache() *TokenCache {
	return &TokenCache{
		entries: make(map[string]*tokenEntry),
		pending: make(map[string]*sync.WaitGroup),
		ttl:     TokenTTL,
		now:     time.Now,
	}
}

// NewTokenCacheAt returns a cache with a fixed clock and TTL, for tests.
func NewTokenCacheAt(ttl time.Duration, now func() time.Time) *TokenCache {
	return &TokenCache{
		entries: make(map[string]*tokenEntry),
		pending: make(map[string]*sync.WaitGroup),
		ttl:     ttl,
		now:     now,
	}
}

// VerifyFunc resolves a raw token string into claims.
type VerifyFunc func(ctx context.Context, token string) (map[string]interface{}, error)

// GetOrVerify returns cached claims for token when fresh, otherwise runs
// verify and caches the result. Only one goroutine verifies a given token at
// a time; the rest wait and re-read the cache.
func (c *TokenCache) GetOrVerify(ctx context.Context, token string, verify VerifyFunc) (map[string]interface{}, error) {
	for {
		c.mu.Lock()
		if entry, ok := c.entries[token]; ok && c.now().Before(entry.expiresAt) {
			claims := entry.claims
			c.mu.Unlock()
			return claims, nil
		}

		if wg, ok := c.pending[token]; ok {
			c.mu.Unlock()
			wg.Wait()
			continue
		}

		wg := &sync.WaitGroup{}
		wg.Add(1)
		c.pending[token] = wg
		c.mu.Unlock()

		claims, err := verify(ctx, token)

		c.mu.Lock()
		delete(c.pending, token)
		if err == nil {
			c.entries[token] = &tokenEntry{claims: claims, expiresAt: c.now().Add(c.ttl)}
		}
		c.mu.Unlock()
		wg.Done()

		return claims, err
	}
}

// Invalidate drops a token from the cache, e.g. after logout.
func (c *TokenCache) Invalidate(token string) {
	c.mu.Lock()
	delete(c.entries, token)
	c.mu.Unlock()
}

// Purge removes expired entries. Called periodically from the scheduler.
func (c *TokenCache) Purge() {
	c.mu.Lock()
	now := c.now()
	for token, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, token)
		}
	}
	c.mu.Unlock()
}

// UserCache holds a single cached user value for the auth-bypass mode, where
// every request resolves to the same local admin account. The loader runs at
// most once.
type UserCache struct {
	mu     sync.Mutex
	loaded bool
	value  interface{}
}

func NewUserCache() *UserCache {
	return &UserCache{}
}

// GetOrLoad returns the cached user, loading it on first use.
func (c *UserCache) GetOrLoad(ctx context.Context, load func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.value, nil
	}

	value, err := load(ctx)
	if err != nil {
		return nil, err
	}

	c.loaded = true
	c.value = value
	return value, nil
}

// Reset clears the cached user.
func (c *UserCache) Reset() {
	c.mu.Lock()
	c.loaded = false
	c.value = nil
	c.mu.Unlock()
}

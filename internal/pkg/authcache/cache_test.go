package authcache

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

func TestTokenCache_CachesWithinTTL(t *testing.T) {
	current := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	cache := NewTokenCacheAt(5*time.Minute, func() time.Time { return current })

	var calls int32
	verify := func(ctx context.Context, token string) (map[string]interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return map[string]interface{}{"user_id": "u1"}, nil
	}

	claims, err := cache.GetOrVerify(context.Background(), "tok", verify)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims["user_id"])

	_, err = cache.GetOrVerify(context.Background(), "tok", verify)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// Past the TTL the verifier runs again.
	current = current.Add(6 * time.Minute)
	_, err = cache.GetOrVerify(context.Background(), "tok", verify)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestTokenCache_DoesNotCacheFailures(t *testing.T) {
	cache := NewTokenCacheAt(5*time.Minute, time.Now)

	var calls int32
	verify := func(ctx context.Context, token string) (map[string]interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("invalid token")
	}

	_, err := cache.GetOrVerify(context.Background(), "bad", verify)
	assert.Error(t, err)

	_, err = cache.GetOrVerify(context.Background(), "bad", verify)
	assert.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestTokenCache_CoalescesConcurrentFirstLookup(t *testing.T) {
	cache := NewTokenCacheAt(5*time.Minute, time.Now)

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	verify := func(ctx context.Context, token string) (map[string]interface{}, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
		}
		return map[string]interface{}{"user_id": "u1"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			claims, err := cache.GetOrVerify(context.Background(), "tok", verify)
			assert.NoError(t, err)
			assert.Equal(t, "u1", claims["user_id"])
		}()
	}

	<-started
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTokenCache_InvalidateForcesReverify(t *testing.T) {
	cache := NewTokenCacheAt(5*time.Minute, time.Now)

	var calls int32
	verify := func(ctx context.Context, token string) (map[string]interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return map[string]interface{}{}, nil
	}

	_, _ = cache.GetOrVerify(context.Background(), "tok", verify)
	cache.Invalidate("tok")
	_, _ = cache.GetOrVerify(context.Background(), "tok", verify)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestTokenCache_PurgeDropsExpired(t *testing.T) {
	current := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	cache := NewTokenCacheAt(time.Minute, func() time.Time { return current })

	var calls int32
	verify := func(ctx context.Context, token string) (map[string]interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return map[string]interface{}{}, nil
	}

	_, _ = cache.GetOrVerify(context.Background(), "tok", verify)
	current = current.Add(2 * time.Minute)
	cache.Purge()

	_, _ = cache.GetOrVerify(context.Background(), "tok", verify)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestUserCache_LoadsOnce(t *testing.T) {
	cache := NewUserCache()

	var calls int32
	load := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "admin", nil
	}

	v, err := cache.GetOrLoad(context.Background(), load)
	require.NoError(t, err)
	assert.Equal(t, "admin", v)

	v, err = cache.GetOrLoad(context.Background(), load)
	require.NoError(t, err)
	assert.Equal(t, "admin", v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	cache.Reset()
	_, err = cache.GetOrLoad(context.Background(), load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestUserCache_DoesNotCacheLoadError(t *testing.T) {
	cache := NewUserCache()

	calls := 0
	load := func(ctx context.Context) (interface{}, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("db down")
		}
		return "admin", nil
	}

	_, err := cache.GetOrLoad(context.Background(), load)
	assert.Error(t, err)

	v, err := cache.GetOrLoad(context.Background(), load)
	require.NoError(t, err)
	assert.Equal(t, "admin", v)
}

package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCache(client, 5*time.Minute), mr
}

func TestCacheFetchJSONPopulatesOnMiss(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	loads := 0
	loader := func(ctx context.Context) (interface{}, error) {
		loads++
		return &Stats{TotalParties: 42}, nil
	}

	key, err := cache.BuildKey(ctx, "dashboard", "stats", "monthly")
	require.NoError(t, err)

	var first Stats
	require.NoError(t, cache.FetchJSON(ctx, key, &first, loader))
	assert.Equal(t, 42, first.TotalParties)
	assert.Equal(t, 1, loads)

	var second Stats
	require.NoError(t, cache.FetchJSON(ctx, key, &second, loader))
	assert.Equal(t, 42, second.TotalParties)
	assert.Equal(t, 1, loads, "second fetch should hit the cache")
}

func TestCacheBumpInvalidates(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	key1, err := cache.BuildKey(ctx, "dashboard", "stats")
	require.NoError(t, err)

	require.NoError(t, cache.Bump(ctx))

	key2, err := cache.BuildKey(ctx, "dashboard", "stats")
	require.NoError(t, err)
	assert.NotEqual(t, key1, key2, "bump must change the versioned key")
}

func TestCacheEntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	loads := 0
	loader := func(ctx context.Context) (interface{}, error) {
		loads++
		return &Stats{TotalItems: loads}, nil
	}

	key, err := cache.BuildKey(ctx, "dashboard", "stats")
	require.NoError(t, err)

	var out Stats
	require.NoError(t, cache.FetchJSON(ctx, key, &out, loader))
	mr.FastForward(6 * time.Minute)

	require.NoError(t, cache.FetchJSON(ctx, key, &out, loader))
	assert.Equal(t, 2, loads, "expired entry should reload")
}

func TestCacheNilClientDegradesToLoader(t *testing.T) {
	cache := NewCache(nil, time.Minute)
	ctx := context.Background()

	var out Stats
	err := cache.FetchJSON(ctx, "ignored", &out, func(ctx context.Context) (interface{}, error) {
		return &Stats{TotalParties: 7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, out.TotalParties)
}

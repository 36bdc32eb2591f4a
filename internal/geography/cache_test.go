package geography

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheRoundTripAndExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewRedisCache(client)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "cities:SP")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "cities:SP", []string{"Campinas", "Santos"}, time.Hour))
	assert.True(t, mr.Exists(redisKeyPrefix+"cities:SP"))

	values, ok, err := cache.Get(ctx, "cities:SP")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Campinas", "Santos"}, values)

	mr.FastForward(2 * time.Hour)
	_, ok, err = cache.Get(ctx, "cities:SP")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "states", []string{"AC", "SP"}, time.Minute))

	values, ok, _ := cache.Get(ctx, "states")
	assert.True(t, ok)
	assert.Equal(t, []string{"AC", "SP"}, values)

	values[0] = "mutated"
	again, _, _ := cache.Get(ctx, "states")
	assert.Equal(t, "AC", again[0])

	now = now.Add(2 * time.Minute)
	_, ok, _ = cache.Get(ctx, "states")
	assert.False(t, ok)
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), RedisOptions{Addr: mr.Addr(), RetryDelay: time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCacheGetSetDelete(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	_, hit, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Hour))
	assert.True(t, mr.Exists(DefaultRedisPrefix+"key"))

	data, hit, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "value", string(data))

	require.NoError(t, c.Delete(ctx, "key"))
	_, hit, err = c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCacheTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	require.NoError(t, c.Set(ctx, "short", []byte("x"), time.Minute))
	require.NoError(t, c.Set(ctx, "forever", []byte("y"), 0))
	assert.Equal(t, time.Minute, mr.TTL(DefaultRedisPrefix+"short"))
	assert.Zero(t, mr.TTL(DefaultRedisPrefix+"forever"))

	mr.FastForward(2 * time.Minute)
	_, hit, err := c.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, hit)
	_, hit, err = c.Get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestRedisCacheClearOnlyOwnPrefix(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, k, []byte(k), 0))
	}
	require.NoError(t, mr.Set("other:key", "keep"))

	require.NoError(t, c.Clear(ctx))
	assert.False(t, mr.Exists(DefaultRedisPrefix+"a"))
	assert.True(t, mr.Exists("other:key"))
}

func TestRedisCacheCustomPrefix(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisCacheFromClient(client, RedisOptions{Prefix: "tenant:"})
	defer c.Close()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	assert.True(t, mr.Exists("tenant:k"))
}

func TestRedisCacheNetworkError(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)
	mr.Close()

	_, _, err := c.Get(ctx, "key")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
	assert.True(t, IsRetryable(err))
}

func TestNewRedisCacheErrors(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisOptions{})
	assert.Error(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err = NewRedisCache(ctx, RedisOptions{Addr: "127.0.0.1:1", RetryDelay: time.Millisecond})
	assert.Error(t, err)
}

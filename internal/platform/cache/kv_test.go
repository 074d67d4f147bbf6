package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisKVStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisKVStore(client)
}

func TestRedisKVStore_RoundTrip(t *testing.T) {
	mr, kv := setupTestRedis(t)
	ctx := context.Background()

	_, err := kv.Get(ctx, "dashboard:stats")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, kv.Set(ctx, "dashboard:stats", `{"total_cerdas":3}`, 30*time.Second))

	got, err := kv.Get(ctx, "dashboard:stats")
	require.NoError(t, err)
	assert.Equal(t, `{"total_cerdas":3}`, got)
	assert.Equal(t, 30*time.Second, mr.TTL("dashboard:stats"))

	mr.FastForward(31 * time.Second)
	_, err = kv.Get(ctx, "dashboard:stats")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisKVStore_Delete(t *testing.T) {
	_, kv := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", "v", 0))
	require.NoError(t, kv.Delete(ctx, "k"))
	require.NoError(t, kv.Delete(ctx, "k"))

	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisKVStore_ServerDown(t *testing.T) {
	mr, kv := setupTestRedis(t)
	mr.Close()

	_, err := kv.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestNewRedisClient_PingFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), RedisOptions{Addr: addr})
	assert.Error(t, err)
}

func TestMemoryKVStore_TTL(t *testing.T) {
	kv := NewMemoryKVStore()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "a", "1", 30*time.Second))
	require.NoError(t, kv.Set(ctx, "b", "2", 0))

	clock = clock.Add(29 * time.Second)
	v, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	clock = clock.Add(time.Second)
	_, err = kv.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	v, err = kv.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	require.NoError(t, kv.Delete(ctx, "b"))
	_, err = kv.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedis connects to REDIS_TEST_ADDR and skips when it is unset
func newTestRedis(t *testing.T) *RedisLocker {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client)
}

func TestRedisLocker_UnlockComparesToken(t *testing.T) {
	locker := newTestRedis(t)
	ctx := context.Background()
	key := MinutesLockKey("redis-test-" + time.Now().Format(time.RFC3339Nano))

	stale, ok, err := locker.TryLock(ctx, key, 50*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)
	time.Sleep(100 * time.Millisecond)

	current, ok, err := locker.TryLock(ctx, key, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, locker.Unlock(ctx, key, stale))
	_, ok, err = locker.TryLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "stale token must not release the current holder")

	require.NoError(t, locker.Unlock(ctx, key, current))
	_, ok, err = locker.TryLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

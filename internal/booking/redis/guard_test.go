package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis backs the guard with miniredis so no real server is
// needed.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()).Err(), "Failed to connect to miniredis")

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestGuardAcquireRelease(t *testing.T) {
	client, _ := setupTestRedis(t)
	guard := NewGuard(client, 30*time.Second)
	ctx := context.Background()

	ok, err := guard.Acquire(ctx, "event-1", "attendee-1")
	assert.NoError(t, err)
	assert.True(t, ok, "first acquire should succeed")

	// Same pair while held: busy.
	ok, err = guard.Acquire(ctx, "event-1", "attendee-1")
	assert.NoError(t, err)
	assert.False(t, ok, "second acquire for the same pair should fail")

	// Other pairs are independent.
	ok, err = guard.Acquire(ctx, "event-1", "attendee-2")
	assert.NoError(t, err)
	assert.True(t, ok, "different attendee should not be blocked")

	ok, err = guard.Acquire(ctx, "event-2", "attendee-1")
	assert.NoError(t, err)
	assert.True(t, ok, "different event should not be blocked")

	err = guard.Release(ctx, "event-1", "attendee-1")
	assert.NoError(t, err)

	ok, err = guard.Acquire(ctx, "event-1", "attendee-1")
	assert.NoError(t, err)
	assert.True(t, ok, "acquire after release should succeed")
}

func TestGuardExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	guard := NewGuard(client, 5*time.Second)
	ctx := context.Background()

	ok, err := guard.Acquire(ctx, "event-1", "attendee-1")
	require.NoError(t, err)
	require.True(t, ok)

	// A crashed attempt never calls Release; the TTL frees the pair.
	mr.FastForward(6 * time.Second)

	ok, err = guard.Acquire(ctx, "event-1", "attendee-1")
	assert.NoError(t, err)
	assert.True(t, ok, "guard should expire after its TTL")
}

func TestGuardReleaseWithoutAcquire(t *testing.T) {
	client, _ := setupTestRedis(t)
	guard := NewGuard(client, 30*time.Second)

	// Releasing a never-acquired pair is a no-op, not an error.
	err := guard.Release(context.Background(), "event-1", "attendee-1")
	assert.NoError(t, err)
}

func TestGuardDefaultTTL(t *testing.T) {
	client, _ := setupTestRedis(t)

	guard := NewGuard(client, 0)
	assert.Equal(t, 30*time.Second, guard.TTL)
}

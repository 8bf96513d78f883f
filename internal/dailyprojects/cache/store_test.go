package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewStore(client), mr
}

func TestStore_GetSet(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	t.Run("returns miss for absent key", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("round-trips a value with TTL", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k", "v", time.Minute))

		val, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", val)

		mr.FastForward(2 * time.Minute)
		_, err = store.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}

func TestStore_SetNX(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	won, err := store.SetNX(ctx, "lock", "a", time.Minute)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = store.SetNX(ctx, "lock", "b", time.Minute)
	require.NoError(t, err)
	assert.False(t, won)

	val, err := store.Get(ctx, "lock")
	require.NoError(t, err)
	assert.Equal(t, "a", val)
}

func TestStore_Increment(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	t.Run("creates at 1 and counts up", func(t *testing.T) {
		n, err := store.Increment(ctx, "counter", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = store.Increment(ctx, "counter", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("refreshes TTL only on creation", func(t *testing.T) {
		_, err := store.Increment(ctx, "window", time.Minute)
		require.NoError(t, err)

		mr.FastForward(30 * time.Second)
		_, err = store.Increment(ctx, "window", time.Minute)
		require.NoError(t, err)

		// The original expiry stands; the second increment must not extend it.
		mr.FastForward(31 * time.Second)
		_, err = store.Get(ctx, "window")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}

func TestStore_IncrementBy(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	n, err := store.IncrementBy(ctx, "stat", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	n, err = store.IncrementBy(ctx, "stat", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
}

func TestStore_DeletePattern(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "daily:2025-09-13:3", "a", 0))
	require.NoError(t, store.Set(ctx, "daily:2025-09-13:5", "b", 0))
	require.NoError(t, store.Set(ctx, "daily:2025-09-14:5", "c", 0))

	removed, err := store.DeletePattern(ctx, "daily:2025-09-13:*")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = store.Get(ctx, "daily:2025-09-14:5")
	assert.NoError(t, err)
}

func TestStore_Unavailable(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()
	mr.Close()

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheUnavailable)

	err = store.Set(ctx, "k", "v", time.Minute)
	assert.ErrorIs(t, err, ErrCacheUnavailable)

	_, err = store.Increment(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, ErrCacheUnavailable)

	assert.ErrorIs(t, store.Ping(ctx), ErrCacheUnavailable)
}

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/cache"
)

func setupTestLimiter(t *testing.T, max int, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewLimiter(cache.NewStore(client), max, window), mr
}

func TestLimiter_Admit(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to the limit then rejects", func(t *testing.T) {
		limiter, _ := setupTestLimiter(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			decision := limiter.Admit(ctx, "caller-a")
			assert.True(t, decision.Allowed, "request %d should pass", i+1)
			assert.False(t, decision.Degraded)
		}

		decision := limiter.Admit(ctx, "caller-a")
		assert.False(t, decision.Allowed)
		assert.GreaterOrEqual(t, decision.RetryAfter, time.Second)
		assert.LessOrEqual(t, decision.RetryAfter, time.Minute)
	})

	t.Run("counts callers independently", func(t *testing.T) {
		limiter, _ := setupTestLimiter(t, 1, time.Minute)

		assert.True(t, limiter.Admit(ctx, "caller-a").Allowed)
		assert.False(t, limiter.Admit(ctx, "caller-a").Allowed)
		assert.True(t, limiter.Admit(ctx, "caller-b").Allowed)
	})

	t.Run("resets on window rollover", func(t *testing.T) {
		limiter, _ := setupTestLimiter(t, 1, time.Minute)

		base := time.Unix(1_757_721_600, 0) // start of a window
		limiter.now = func() time.Time { return base }

		assert.True(t, limiter.Admit(ctx, "caller-a").Allowed)
		assert.False(t, limiter.Admit(ctx, "caller-a").Allowed)

		limiter.now = func() time.Time { return base.Add(time.Minute) }
		assert.True(t, limiter.Admit(ctx, "caller-a").Allowed)
	})

	t.Run("fails open when cache is down", func(t *testing.T) {
		limiter, mr := setupTestLimiter(t, 1, time.Minute)
		mr.Close()

		for i := 0; i < 5; i++ {
			decision := limiter.Admit(ctx, "caller-a")
			assert.True(t, decision.Allowed)
			assert.True(t, decision.Degraded)
		}
	})
}

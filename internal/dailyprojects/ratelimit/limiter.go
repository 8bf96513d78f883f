// Package ratelimit implements fixed-window request counting on top of the
// cache store. The window counter lives in Redis so the limit holds across
// multiple processes.
package ratelimit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/cache"
)

// Decision is the outcome of an admit check.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration

	// Degraded is set when the cache store was unreachable and the limiter
	// failed open. Availability wins over strict enforcement.
	Degraded bool
}

// Limiter counts requests per caller per fixed window.
type Limiter struct {
	store  *cache.Store
	max    int64
	window time.Duration
	now    func() time.Time
}

func NewLimiter(store *cache.Store, max int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		max:    int64(max),
		window: window,
		now:    time.Now,
	}
}

// Admit counts a request for callerKey and decides whether it may proceed.
// The counter key embeds the window id, so rollover starts a fresh counter
// and the old one expires on its own TTL.
func (l *Limiter) Admit(ctx context.Context, callerKey string) Decision {
	now := l.now()
	windowID := now.Unix() / int64(l.window.Seconds())
	key := fmt.Sprintf("rate:%s:%d", callerKey, windowID)

	n, err := l.store.Increment(ctx, key, l.window)
	if err != nil {
		log.Printf("[warn] operation=rate_admit caller=%s failing open: %v", callerKey, err)
		return Decision{Allowed: true, Degraded: true}
	}

	if n > l.max {
		windowEnd := time.Unix((windowID+1)*int64(l.window.Seconds()), 0)
		retryAfter := windowEnd.Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return Decision{Allowed: false, RetryAfter: retryAfter}
	}
	return Decision{Allowed: true}
}

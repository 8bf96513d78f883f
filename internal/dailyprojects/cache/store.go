package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss means the key does not exist. Normal control flow.
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable means the store could not be reached. Callers treat
	// this as "proceed without cache", never as a fatal condition.
	ErrCacheUnavailable = errors.New("cache unavailable")
)

// Store wraps a Redis client with the handful of operations the engine needs:
// plain get/set with TTL, set-if-absent for locks, atomic increments for rate
// counters and stats, and pattern deletes for invalidation.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get returns the raw value under key, ErrCacheMiss if absent.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", unavailable("get", err)
	}
	return val, nil
}

// Set stores value under key. A zero ttl means no expiry.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return unavailable("set", err)
	}
	return nil
}

// SetNX stores value only if key is absent. Returns whether the write won.
func (s *Store) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, unavailable("setnx", err)
	}
	return ok, nil
}

// Increment atomically bumps the counter under key, creating it at 1. The TTL
// is applied only on creation so an active window keeps its original expiry.
func (s *Store) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, unavailable("incr", err)
	}
	if n == 1 && ttl > 0 {
		if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return n, unavailable("expire", err)
		}
	}
	return n, nil
}

// IncrementBy atomically adds delta to the counter under key. Used for stats
// counters, which never expire.
func (s *Store) IncrementBy(ctx context.Context, key string, delta int64) (int64, error) {
	n, err := s.client.IncrBy(ctx, key, delta).Result()
	if err != nil {
		return 0, unavailable("incrby", err)
	}
	return n, nil
}

// Delete removes the given keys and returns how many existed.
func (s *Store) Delete(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	n, err := s.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, unavailable("del", err)
	}
	return n, nil
}

// Keys returns all keys matching pattern via SCAN.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, unavailable("scan", err)
	}
	return keys, nil
}

// DeletePattern removes every key matching pattern and returns the count.
func (s *Store) DeletePattern(ctx context.Context, pattern string) (int64, error) {
	keys, err := s.Keys(ctx, pattern)
	if err != nil {
		return 0, err
	}
	return s.Delete(ctx, keys...)
}

// Ping reports whether the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrCacheUnavailable, op, err)
}

// Package cache provides a small key/value cache with per-entry expiry.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values under string keys. Expired entries read as
// misses. A ttl <= 0 stores the value without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Clock returns the current time.
type Clock func() time.Time

func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

func expired(expiresAt, now time.Time) bool {
	return !expiresAt.IsZero() && !now.Before(expiresAt)
}

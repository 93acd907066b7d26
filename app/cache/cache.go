package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Key spaces. Every cached entry lives under one of these prefixes so that
// writes can invalidate a whole key space at once.
const (
	FeedPrefix    = "feed:"
	LibraryPrefix = "library:"
)

// Cache is the best-effort feed cache port. Implementations must treat every
// error as recoverable: callers fall through to persistence and count the
// failure, they never surface it to the client.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for at most ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix removes every key under the given prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// FeedKey derives the cache key for a feed page from its pagination parameters.
func FeedKey(limit int, cursor string) string {
	return fmt.Sprintf("%slimit=%d:cursor=%s", FeedPrefix, limit, cursor)
}

// New selects a backend from the configured cache URL: empty for the
// in-process memory cache, "badger:<dir>" for the embedded disk cache,
// anything else is treated as a valkey address.
func New(cacheURL string) (Cache, error) {
	switch {
	case cacheURL == "":
		return NewMemory(), nil
	case strings.HasPrefix(cacheURL, "badger:"):
		return NewBadger(strings.TrimPrefix(cacheURL, "badger:"))
	default:
		return NewValkey(cacheURL)
	}
}

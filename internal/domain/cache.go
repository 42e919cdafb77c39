package domain

import "time"

// Cache is the short-TTL read-through cache used by settings panels.
// Entries are opaque JSON keyed by bucket and key.
type Cache interface {
	// Get decodes a fresh entry into dest; false on miss or expiry
	Get(bucket, key string, dest any) bool
	Set(bucket, key string, value any, ttl time.Duration) error

	Invalidate(bucket, key string)
	InvalidatePrefix(bucket, prefix string)
	InvalidateAll()

	Close() error
}

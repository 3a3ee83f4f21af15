package repository

import "time"

// CacheRepository caches generated documents so re-printing an unchanged
// contract does not go back through the rasterizer. Values expire after ttl;
// a zero ttl means no expiry.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration) error
}

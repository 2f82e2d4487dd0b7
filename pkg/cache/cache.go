// Package cache provides content-addressed caching for rendered artifacts.
//
// The render pipeline keys artifacts on the SHA-256 hash of the graph's
// canonical JSON plus the visualizer key, so a repeated render of the same
// graph is served from cache. Two backends exist: [FileCache] for CLI usage
// and [NullCache] for disabling caching (e.g. in tests or with --no-cache).
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached. Artifacts are
// content-addressed, so a long TTL is safe; the TTL only bounds disk usage.
const TTLArtifact = 7 * 24 * time.Hour

// Cache stores opaque byte payloads under string keys with optional TTLs.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact from the graph
// content hash and the visualizer's qualified registry key.
func ArtifactKey(graphHash, visualizerKey string) string {
	return hashKey("artifact", graphHash, visualizerKey)
}

// Package cache provides a small artifact cache for rendered outputs.
//
// Rendering a strip SVG or a hierarchy PNG for an unchanged document is
// deterministic, so the pipeline caches artifacts keyed by the document
// hash and the render options. Two implementations exist: a file-based
// cache for normal CLI use and a null cache for --no-cache runs and tests.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLArtifact bounds how long rendered artifacts stay in the cache. The key
// embeds the document hash, so a stale entry can only be an orphan, never a
// wrong answer.
const TTLArtifact = 7 * 24 * time.Hour

// ArtifactKeyOpts are the render options that distinguish cached artifacts.
type ArtifactKeyOpts struct {
	Format   string // "svg", "png", "dot", "xlsx", "pdf"
	Target   string // collection path inside the document, e.g. "apb/uart0"
	Width    float64
	Height   float64
	Detailed bool
}

// ArtifactKey builds the cache key for a rendered artifact of the document
// with the given content hash.
func ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

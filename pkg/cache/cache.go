// Package cache provides the storage layer shared by the CLI and the API.
//
// Two kinds of entries are cached, each under its own key family:
//
//   - Scenes: the JSON of a generated [mark.Scene], keyed by the hash of the
//     spec that produced it
//   - Artifacts: rendered bytes (SVG, PNG, PDF, JSON), keyed by the scene
//     hash plus the render options
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for the
// server and [NullCache] when caching is disabled. Key construction lives in
// [Keyer] so that tenants can be isolated with [ScopedKeyer] without the
// backends knowing.
//
// [mark.Scene]: github.com/matzehuels/brandmark/pkg/mark.Scene
package cache

import (
	"context"
	"time"
)

// Cache TTLs.
const (
	// TTLScene is how long generated scenes are kept.
	TTLScene = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts are kept.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

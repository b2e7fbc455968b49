// Package cache provides the caching layer shared by the CLI and the
// HTTP server. Parsed documents, rendered artifacts and overview graphs
// are stored as opaque byte blobs behind a common Cache interface, with
// file, Redis, MongoDB and null backends.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached stage. Rendered artifacts are fully determined
// by the document bytes and render options, so they can live long; HTTP
// responses are kept short to bound staleness.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLOverview = 7 * 24 * time.Hour
	TTLHTTP     = 1 * time.Hour
)

// Cache stores opaque byte blobs with optional expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources (connections, file handles).
	Close() error
}

// ArtifactKeyOpts are the render options that change artifact bytes.
// Every field participates in the cache key.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Scale        float64 `json:"scale"`
	Padding      float64 `json:"padding"`
	Font         string  `json:"font,omitempty"`
	CloneMarkers bool    `json:"clone_markers"`
}

// OverviewKeyOpts are the overview options that change overview bytes.
type OverviewKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// Keyer generates cache keys for the pipeline stages. Keys for the same
// inputs must be stable across processes so that shared backends (Redis,
// MongoDB) can serve multiple instances.
type Keyer interface {
	// HTTPKey generates a key for caching HTTP responses.
	HTTPKey(namespace, key string) string

	// ArtifactKey generates a key for a rendered artifact of the
	// document identified by docHash.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string

	// OverviewKey generates a key for an overview graph of the
	// document identified by docHash.
	OverviewKey(docHash string, opts OverviewKeyOpts) string
}

// DefaultKeyer generates keys by hashing the stage inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
// The key is not hashed so that it stays greppable in the backend.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

// OverviewKey generates a key for an overview graph.
func (k *DefaultKeyer) OverviewKey(docHash string, opts OverviewKeyOpts) string {
	return hashKey("overview", docHash, opts)
}

// Package cache stores rendered chart artifacts keyed by content hash.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for the render server and [NullCache] when caching is disabled.
// [Instrumented] wraps any of them and reports hits, misses and writes to
// the observability cache hooks.
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes every input that
// influences the output, so a key changes whenever the data, the chart
// configuration, the container size or the output format changes.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. A miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Keyer derives cache keys for the stages of the chart pipeline.
type Keyer interface {
	// SceneKey identifies a laid out scene.
	SceneKey(tableHash string, opts SceneKeyOpts) string

	// ArtifactKey identifies one serialized output of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// SceneKeyOpts are the layout inputs besides the table.
type SceneKeyOpts struct {
	ConfigHash string  `json:"config_hash"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// ArtifactKeyOpts are the serialization inputs besides the scene.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Static bool    `json:"static,omitempty"`
}

// TTLs for cached entries.
const (
	SceneTTL    = 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// NullCache never stores anything. It backs --no-cache and servers
// started without a cache.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}

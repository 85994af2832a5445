// Package cache stores computed layouts and rendered artifacts so repeated
// CLI and service requests skip recomputation.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// deployments that share a cache between service replicas, and [NullCache]
// when caching is disabled. Keys come from a [Keyer] so every backend agrees
// on how inputs map to entries.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/mosaicflow/pkg/observability"
)

// Default entry lifetimes.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keys
// =============================================================================

// LayoutKeyOpts holds the inputs that change a computed layout.
type LayoutKeyOpts struct {
	Width        float64 `json:"width"`
	MinItemWidth float64 `json:"min_item_width"`
	Threshold    float64 `json:"threshold"`
	LevelBottom  bool    `json:"level_bottom"`
}

// ArtifactKeyOpts holds the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Width  int    `json:"width,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey keys a layout computed from a manifest with the given hash.
	LayoutKey(manifestHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendering of a layout with the given hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key inputs under fixed prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(manifestHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", manifestHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// =============================================================================
// Typed Access
// =============================================================================

// GetJSON loads the JSON value stored under key into v. keyType labels the
// lookup for observability hooks. Undecodable entries count as misses.
func GetJSON(ctx context.Context, c Cache, keyType, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok || json.Unmarshal(data, v) != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false, nil
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true, nil
}

// SetJSON stores v as JSON under key.
func SetJSON(ctx context.Context, c Cache, keyType, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
	return nil
}

// Package cache provides the byte caches used by the layout pipeline.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys come from a [Keyer], which hashes every input that affects the cached
// output, so a change in the tree document or in any layout option yields a
// different key.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired entries
	// are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl ≤ 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default TTLs for cached pipeline outputs.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// =============================================================================
// Keyer
// =============================================================================

// Keyer derives cache keys for pipeline outputs.
type Keyer interface {
	// LayoutKey keys a laid-out scene by the hash of its tree documents and
	// the options that shaped it.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered artifact by the hash of its scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout inputs that change a scene.
type LayoutKeyOpts struct {
	BaseScale float64    `json:"base_scale"`
	BaseGap   float64    `json:"base_gap"`
	Origin    [3]float64 `json:"origin"`
	Primitive string     `json:"primitive"`
}

// ArtifactKeyOpts are the render inputs that change an artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Projection string  `json:"projection"`
	Unit       float64 `json:"unit"`
	Detailed   bool    `json:"detailed"`
	Wood       string  `json:"wood"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey implements [Keyer].
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey implements [Keyer].
func (k *DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)

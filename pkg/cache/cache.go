// Package cache provides a content-addressed result cache for the lineage
// pipeline.
//
// The transformation core is a pure function, so its results are perfectly
// cacheable: the same snapshot always produces the same tree. The pipeline
// keys cached trees by a canonical hash of the normalized snapshot, which
// means a re-poll that returns the same records - even in a different
// order - is served from cache instead of being rebuilt.
//
// Backends:
//   - file: persistent cache for CLI usage (XDG cache directory)
//   - memory: in-process cache for embedding and tests
//   - redis: shared cache for multi-instance dashboard deployments
//   - null: caching disabled
//
// The cache is strictly an optimization layer. Correctness never depends on
// it: a null backend yields byte-identical trees, just slower.
package cache

import (
	"context"
	"time"
)

// TTLTree is the default time-to-live for cached trees. Snapshots are
// content-addressed, so entries never go stale in the correctness sense;
// the TTL only bounds disk/redis growth for long-running simulations.
const TTLTree = 24 * time.Hour

// Cache is the storage interface shared by all backends.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss;
// errors are reserved for backend failures. A ttl of zero on Set means the
// entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys. The default implementation produces global
// keys; wrap it in a ScopedKeyer to namespace keys per tank or per user.
type Keyer interface {
	// TreeKey generates the key for a built tree, given the canonical
	// snapshot hash.
	TreeKey(snapshotHash string) string
}

// DefaultKeyer generates unscoped cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// TreeKey generates the key for a built tree.
func (k *DefaultKeyer) TreeKey(snapshotHash string) string {
	return "tree:" + snapshotHash
}

// ScopedKeyer wraps a Keyer with a prefix so independent simulations (or
// users) get separate cache namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
// A nil inner falls back to the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TreeKey generates a prefixed tree key.
func (k *ScopedKeyer) TreeKey(snapshotHash string) string {
	return k.prefix + k.inner.TreeKey(snapshotHash)
}

// Package pipeline provides the cached orchestration around the lineage
// transformation core.
//
// The core itself ([github.com/mbolaris/tankview/pkg/lineage]) is a pure
// function from one snapshot to one tree. This package adds everything the
// surrounding dashboard needs on top of that purity without compromising
// it: content-addressed caching, run statistics, structured logging, and
// tolerant input decoding. CLI and embedding callers share a [Runner] so
// the behavior is identical across entry points.
//
// # Usage
//
// Create a Runner and execute the pipeline on a decoded snapshot:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, records, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	render(result.Tree)
//
// Or hand it raw JSON straight from the data source:
//
//	result, err := runner.ExecuteReader(ctx, resp.Body, pipeline.Options{})
//
// Identical snapshots - even with records in a different order - hit the
// cache, and [tree.Equal] lets the presentation layer skip the re-render
// entirely when nothing changed.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mbolaris/tankview/pkg/lineage"
	"github.com/mbolaris/tankview/pkg/tree"
)

// Options configures one pipeline execution.
type Options struct {
	// Refresh bypasses the cache read (the result is still stored).
	Refresh bool `json:"refresh,omitempty"`

	// TTL overrides the cache time-to-live. Zero means cache.TTLTree.
	TTL time.Duration `json:"ttl,omitempty"`

	// Logger receives progress logging. Defaults to the runner's logger.
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of one pipeline run.
type Result struct {
	// Tree is the renderer-facing tree, or nil for an empty snapshot.
	Tree *tree.Node

	// SnapshotHash is the content hash of the canonical snapshot. Two
	// results with equal hashes are guaranteed to carry equal trees.
	SnapshotHash string

	// RunID uniquely identifies this execution for log correlation.
	RunID uuid.UUID

	// Stats contains diagnostic counts and timing.
	Stats Stats

	// CacheInfo tracks whether the tree came from cache.
	CacheInfo CacheInfo
}

// Unchanged reports whether this result's tree is structurally identical
// to prev. The presentation layer uses it to skip no-op re-renders.
func (r *Result) Unchanged(prev *tree.Node) bool {
	return tree.Equal(r.Tree, prev)
}

// Stats contains pipeline execution statistics. The embedded lineage
// counts describe the transformation itself; Malformed counts input
// elements that ExecuteReader could not decode at all.
type Stats struct {
	lineage.Stats
	Malformed int
	BuildTime time.Duration
}

// CacheInfo tracks cache participation for one run.
type CacheInfo struct {
	// TreeHit is true when the tree was served from cache.
	TreeHit bool
}

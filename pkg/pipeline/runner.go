package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mbolaris/tankview/pkg/cache"
	"github.com/mbolaris/tankview/pkg/lineage"
	"github.com/mbolaris/tankview/pkg/observability"
	"github.com/mbolaris/tankview/pkg/tree"
)

// Runner executes the lineage pipeline with caching.
//
// The Runner is stateless except for the cache and logger - it retains
// nothing between runs, so the determinism guarantees of the core carry
// over. Multiple goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer gets the DefaultKeyer; a nil cache disables caching via the
// NullCache; a nil logger falls back to log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// envelope is the cached form of a build: the tree plus the structural
// diagnostics that cannot be recomputed from the normalized snapshot alone
// without redoing the build.
type envelope struct {
	Tree   *tree.Node          `json:"tree"`
	Report lineage.BuildReport `json:"report"`
}

// Execute runs the full transformation on one snapshot.
//
// Normalization always runs locally - it is cheap and produces the
// canonical form the cache key is derived from. The expensive part (index,
// root resolution, materialization) is skipped on a cache hit.
func (r *Runner) Execute(ctx context.Context, records []lineage.Record, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	start := time.Now()
	observability.Build().OnBuildStart(ctx, len(records))

	canonical, norm := lineage.Normalize(records)

	canonicalData, err := json.Marshal(lineage.Canonical(canonical))
	if err != nil {
		return nil, fmt.Errorf("canonicalize snapshot: %w", err)
	}
	snapshotHash := cache.Hash(canonicalData)
	key := r.Keyer.TreeKey(snapshotHash)

	result := &Result{
		SnapshotHash: snapshotHash,
		RunID:        uuid.New(),
	}
	result.Stats.Stats = lineage.Stats{
		Records:        len(canonical),
		Dropped:        norm.Dropped,
		Duplicates:     norm.Duplicates,
		TrimmedParents: norm.TrimmedParents,
	}

	if !opts.Refresh {
		if blob, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var env envelope
			if json.Unmarshal(blob, &env) == nil {
				observability.Cache().OnCacheHit(ctx, "tree")
				result.Tree = env.Tree
				result.Stats.CyclesSevered = env.Report.CyclesSevered
				result.Stats.Roots = env.Report.Roots
				result.Stats.BuildTime = time.Since(start)
				result.CacheInfo.TreeHit = true
				observability.Build().OnBuildComplete(ctx, result.Stats.Records,
					env.Report.Roots, env.Report.CyclesSevered, norm.Dropped,
					result.Stats.BuildTime, nil)
				opts.Logger.Debug("tree served from cache",
					"run", result.RunID,
					"snapshot", shortHash(snapshotHash),
					"records", result.Stats.Records)
				return result, nil
			}
			// Corrupt cache entry: fall through and rebuild.
		}
		observability.Cache().OnCacheMiss(ctx, "tree")
	}

	root, report, err := lineage.BuildTree(canonical)
	if err != nil {
		observability.Build().OnBuildComplete(ctx, result.Stats.Records,
			0, 0, norm.Dropped, time.Since(start), err)
		return nil, fmt.Errorf("build tree: %w", err)
	}
	result.Tree = root
	result.Stats.CyclesSevered = report.CyclesSevered
	result.Stats.Roots = report.Roots
	result.Stats.BuildTime = time.Since(start)

	ttl := opts.TTL
	if ttl == 0 {
		ttl = cache.TTLTree
	}
	if blob, err := json.Marshal(envelope{Tree: root, Report: report}); err == nil {
		if r.Cache.Set(ctx, key, blob, ttl) == nil {
			observability.Cache().OnCacheSet(ctx, "tree", len(blob))
		}
	}

	observability.Build().OnBuildComplete(ctx, result.Stats.Records,
		report.Roots, report.CyclesSevered, norm.Dropped,
		result.Stats.BuildTime, nil)

	opts.Logger.Info("built lineage tree",
		"run", result.RunID,
		"snapshot", shortHash(snapshotHash),
		"records", result.Stats.Records,
		"roots", report.Roots,
		"severed", report.CyclesSevered,
		"duration", result.Stats.BuildTime.Round(time.Microsecond))

	return result, nil
}

// ExecuteReader decodes a JSON snapshot from the data source and runs the
// pipeline on it. Elements that fail to decode are counted in
// Stats.Malformed, never fatal.
func (r *Runner) ExecuteReader(ctx context.Context, src io.Reader, opts Options) (*Result, error) {
	records, malformed, err := lineage.DecodeRecords(src)
	if err != nil {
		return nil, err
	}
	result, err := r.Execute(ctx, records, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.Malformed = malformed
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// shortHash abbreviates a snapshot hash for log lines.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

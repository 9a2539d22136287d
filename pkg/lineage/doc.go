// Package lineage turns flat reproduction records into a renderer-safe tree.
//
// # Overview
//
// The tank simulation reports reproduction as a flat, relationally-linked
// set of records: "agent X was born from parent(s) Y (and Z)". That data is
// a graph, and an untrusted one - records can be malformed, duplicated,
// re-sent on every poll, reference parents that are missing from the
// snapshot, and (if the upstream simulation ever misbehaves) even form
// cycles. The dashboard's tree widget, on the other hand, accepts exactly
// one rooted, acyclic tree.
//
// This package is the bridge. [Build] runs a five-stage pipeline on one
// immutable snapshot:
//
//  1. Normalize: validate and deduplicate raw records ([Normalize])
//  2. Index: build id and parent→children lookups ([BuildIndex])
//  3. Resolve: determine the root set and neutralize cycles ([Index.Roots])
//  4. Materialize: produce the output tree with deterministic ordering
//  5. Wrap: collapse a multi-root forest under a synthetic super-root
//
// # Guarantees
//
// For any input, the output (if non-nil) is a finite, acyclic, single-rooted
// tree in which every record surviving normalization appears exactly once
// and sibling order depends only on snapshot content, never on record
// arrival order. Malformed input degrades to the largest constructible tree
// and a set of diagnostic counts; it never aborts the transformation. An
// empty or entirely invalid snapshot yields a nil tree, which the caller
// reads as "no data yet".
//
// # Purity
//
// The transformation is a pure, synchronous computation: no I/O, no
// retained state between calls, freshly allocated output every call. It is
// safe to run concurrently from independent calls. Polling cadence, request
// cancellation, and previous-tree diffing belong to the caller; see
// [github.com/mbolaris/tankview/pkg/pipeline] for the cached orchestration
// used by the CLI.
package lineage

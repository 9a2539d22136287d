package lineage

import (
	"errors"
	"fmt"

	"github.com/mbolaris/tankview/pkg/tree"
)

// ErrReservedID is returned by [Build] and [BuildTree] when an input record
// claims the synthetic super-root id. The upstream simulation never emits
// that id, so a collision is a programming-contract violation rather than a
// runtime condition to degrade around.
var ErrReservedID = errors.New("record uses reserved super-root id")

// Stats summarizes one transformation run. All fields are diagnostics: a
// non-zero Dropped or CyclesSevered still comes with a valid tree.
type Stats struct {
	// Records is the number of records surviving normalization, which
	// equals the number of lineage nodes in the output tree.
	Records int
	// Dropped counts raw records skipped for lack of a usable id.
	Dropped int
	// Duplicates counts re-sent records superseded by a later occurrence.
	Duplicates int
	// TrimmedParents counts parent entries discarded beyond the second.
	TrimmedParents int
	// CyclesSevered counts parent edges cut to neutralize cycles.
	CyclesSevered int
	// Roots is the number of independent lineages in the snapshot.
	Roots int
}

// BuildReport carries the structural diagnostics of [BuildTree].
type BuildReport struct {
	// CyclesSevered counts parent edges cut to neutralize cycles.
	CyclesSevered int
	// Roots is the number of independent lineages found.
	Roots int
}

// BuildTree materializes the forest for a canonical record mapping, as
// produced by [Normalize]. A nil tree with a nil error means the snapshot
// was empty - "no data yet".
//
// When the snapshot holds a single lineage its root is returned unchanged;
// multiple lineages are wrapped under the synthetic super-root so the
// renderer always receives exactly one root.
func BuildTree(records map[string]Record) (*tree.Node, BuildReport, error) {
	var report BuildReport
	if _, clash := records[tree.SuperRootID]; clash {
		return nil, report, fmt.Errorf("%w: %q", ErrReservedID, tree.SuperRootID)
	}
	if len(records) == 0 {
		return nil, report, nil
	}

	x := BuildIndex(records)
	rootIDs, severed := x.Roots()
	report.CyclesSevered = severed
	report.Roots = len(rootIDs)

	roots := make([]*tree.Node, 0, len(rootIDs))
	for _, id := range rootIDs {
		roots = append(roots, x.Materialize(id))
	}

	if len(roots) == 1 {
		return roots[0], report, nil
	}
	return tree.NewSuperRoot(roots), report, nil
}

// Build runs the complete transformation on one raw snapshot: normalize,
// index, resolve roots and cycles, materialize, and wrap the forest.
//
// The only possible error is [ErrReservedID]; every other kind of bad input
// degrades to the largest constructible tree plus diagnostic counts, or to
// a nil tree for an empty snapshot.
func Build(records []Record) (*tree.Node, Stats, error) {
	canonical, norm := Normalize(records)
	root, build, err := BuildTree(canonical)
	stats := Stats{
		Records:        len(canonical),
		Dropped:        norm.Dropped,
		Duplicates:     norm.Duplicates,
		TrimmedParents: norm.TrimmedParents,
		CyclesSevered:  build.CyclesSevered,
		Roots:          build.Roots,
	}
	if err != nil {
		return nil, stats, err
	}
	return root, stats, nil
}

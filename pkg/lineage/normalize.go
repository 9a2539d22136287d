package lineage

import (
	"slices"
)

// NormalizeReport counts the records dropped or repaired while producing
// the canonical snapshot. The counts are diagnostics for the caller's
// logging; none of them indicates a failed transformation.
type NormalizeReport struct {
	// Dropped is the number of records skipped for lack of a usable id.
	Dropped int
	// Duplicates is the number of earlier occurrences replaced by a
	// later record with the same id (update-in-place semantics).
	Duplicates int
	// TrimmedParents is the number of parent entries discarded beyond
	// the two the data model allows.
	TrimmedParents int
}

// Normalize reduces a raw record sequence to one canonical record per id.
//
// Records without a usable id are dropped and counted. When the same id
// appears more than once, the last occurrence in input order wins - the
// simulation re-broadcasts records to signal in-place updates such as a
// color change, so a repeat is an update, not a new branch. Parent lists
// longer than [MaxParents] are trimmed, keeping the first two entries.
//
// Normalize never fails: empty or entirely invalid input yields an empty
// map alongside the report.
func Normalize(records []Record) (map[string]Record, NormalizeReport) {
	canonical := make(map[string]Record, len(records))
	var report NormalizeReport

	for _, rec := range records {
		if rec.ID == "" {
			report.Dropped++
			continue
		}
		if len(rec.ParentIDs) > MaxParents {
			report.TrimmedParents += len(rec.ParentIDs) - MaxParents
			rec.ParentIDs = rec.ParentIDs[:MaxParents]
		}
		if _, exists := canonical[rec.ID]; exists {
			report.Duplicates++
		}
		canonical[rec.ID] = rec
	}

	return canonical, report
}

// Canonical returns the canonical records as a slice sorted ascending by
// id. The result depends only on snapshot content, never on the arrival
// order of records, which makes it suitable as a content-hash input for
// snapshot-level caching.
func Canonical(records map[string]Record) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b Record) int { return CompareIDs(a.ID, b.ID) })
	return out
}

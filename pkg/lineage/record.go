package lineage

import (
	"cmp"
	"strconv"
)

// Record is one reproduction event as supplied by the data source.
//
// Records are owned by the caller and treated as immutable for the duration
// of one transformation call. BirthOrder is a monotonically comparable value
// (tick, frame, or timestamp) used only for deterministic ordering - parent
// resolution never depends on it.
type Record struct {
	ID         string   `json:"id"`
	ParentIDs  []string `json:"parentIds,omitempty"`
	Algorithm  string   `json:"algorithmLabel"`
	Color      string   `json:"color"`
	BirthOrder float64  `json:"birthOrder"`
}

// MaxParents is the maximum number of parents a record may carry: zero
// (asexual origin), one, or two. Normalization trims anything beyond that.
const MaxParents = 2

// CompareIDs orders two identifiers numerically when both parse as
// integers, lexicographically otherwise. The simulation emits small integer
// ids, so "10" must sort after "9", but the ordering still has to be total
// for arbitrary string ids.
//
// This is the comparison behind primary-parent selection and all sibling
// and root tie-breaks, so it is deliberately independent of input order.
func CompareIDs(a, b string) int {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	if aErr == nil && bErr == nil {
		return cmp.Compare(ai, bi)
	}
	return cmp.Compare(a, b)
}

// compareRecords orders records by birth order, ties broken by id.
// This single ordering drives root ordering and sibling ordering.
func compareRecords(a, b Record) int {
	if c := cmp.Compare(a.BirthOrder, b.BirthOrder); c != 0 {
		return c
	}
	return CompareIDs(a.ID, b.ID)
}

package lineage

import "slices"

// Visitation marks used during root resolution.
const (
	markUnvisited = iota
	markInProgress
	markDone
)

// node wraps a canonical record with its resolved structural parent and the
// visitation mark used by cycle resolution. Nodes live only for the
// duration of a single transformation call.
type node struct {
	rec Record

	// primaryParent is the single structural edge, or "" for a root.
	primaryParent string
	// secondaryParent records the other parent of a two-parent record.
	// It is informational only and never produces a structural edge.
	secondaryParent string

	mark int
}

// Index holds the lookup structures built from one canonical snapshot:
// an id→node map and a parent→children adjacency. Children are stored in
// deterministic snapshot order but are not sorted for display until
// materialization.
//
// An Index is a single-use value: [Index.Roots] consumes its visitation
// marks and may sever edges. Build a fresh Index per transformation call.
type Index struct {
	byID       map[string]*node
	childrenOf map[string][]string

	// order is every id sorted ascending by birth order then id. It fixes
	// the iteration order for root resolution, keeping the whole pipeline
	// independent of map iteration.
	order []string
}

// BuildIndex constructs the ancestry index for a canonical record mapping.
//
// For two-parent records the primary parent - the one that forms the
// structural tree edge - is the smaller of the two ids under [CompareIDs],
// regardless of how the record listed them. The other parent is kept as
// non-structural metadata. A parent entry that does not resolve to any
// known id is treated as "no parent": the child is promoted to an orphan
// root rather than reported as an error.
func BuildIndex(records map[string]Record) *Index {
	x := &Index{
		byID:       make(map[string]*node, len(records)),
		childrenOf: make(map[string][]string),
		order:      make([]string, 0, len(records)),
	}

	for id, rec := range records {
		x.byID[id] = &node{rec: rec}
		x.order = append(x.order, id)
	}
	slices.SortFunc(x.order, func(a, b string) int {
		return compareRecords(x.byID[a].rec, x.byID[b].rec)
	})

	for _, id := range x.order {
		n := x.byID[id]
		var parents []string
		for _, pid := range n.rec.ParentIDs {
			if _, known := x.byID[pid]; !known {
				continue // orphan promotion
			}
			if !slices.Contains(parents, pid) {
				parents = append(parents, pid)
			}
		}
		switch len(parents) {
		case 0:
			// natural root
		case 1:
			n.primaryParent = parents[0]
		default:
			n.primaryParent = parents[0]
			n.secondaryParent = parents[1]
			if CompareIDs(parents[1], parents[0]) < 0 {
				n.primaryParent, n.secondaryParent = parents[1], parents[0]
			}
		}
		if n.primaryParent != "" {
			x.childrenOf[n.primaryParent] = append(x.childrenOf[n.primaryParent], id)
		}
	}

	return x
}

// Len returns the number of records in the index.
func (x *Index) Len() int { return len(x.byID) }

// Record returns the canonical record for id.
func (x *Index) Record(id string) (Record, bool) {
	n, ok := x.byID[id]
	if !ok {
		return Record{}, false
	}
	return n.rec, true
}

// PrimaryParent returns the id of the structural parent, or "" for roots
// and unknown ids.
func (x *Index) PrimaryParent(id string) string {
	if n, ok := x.byID[id]; ok {
		return n.primaryParent
	}
	return ""
}

// SecondaryParent returns the non-structural second parent of a two-parent
// record, or "" if there is none.
func (x *Index) SecondaryParent(id string) string {
	if n, ok := x.byID[id]; ok {
		return n.secondaryParent
	}
	return ""
}

// Children returns the ids whose primary parent is id. The returned slice
// is a read-only view in snapshot order; materialization sorts a copy.
func (x *Index) Children(id string) []string { return x.childrenOf[id] }

// severPrimary removes the structural edge from id's primary parent,
// turning id into a root. Used by cycle resolution.
func (x *Index) severPrimary(id string) {
	n := x.byID[id]
	parent := n.primaryParent
	if parent == "" {
		return
	}
	n.primaryParent = ""
	kids := x.childrenOf[parent]
	x.childrenOf[parent] = slices.DeleteFunc(kids, func(c string) bool { return c == id })
}

package lineage

import "slices"

// Roots determines the forest's root set so that every record is reachable
// from exactly one root via primary-parent edges, severing cycles where
// needed. The returned ids are ordered ascending by birth order, then id.
// severed reports how many edges were cut to neutralize cycles.
//
// Natural roots are nodes whose primary parent is absent. A depth-first
// walk from each natural root marks everything it can reach. Any node still
// unvisited afterwards must sit on - or below - a primary-parent cycle that
// no natural root can reach: each node has at most one structural parent,
// so every connected component contains at most one cycle. Walking such a
// node's parent chain, the first node encountered that is already
// in-progress is the cycle's entry point; severing that node's single
// parent edge turns it into a root and the rest of its component into a
// tree. Each edge is traversed at most once, so the walk always terminates.
//
// Roots consumes the index's visitation marks and mutates severed edges;
// call it at most once per index.
func (x *Index) Roots() (roots []string, severed int) {
	for _, id := range x.order {
		if x.byID[id].primaryParent == "" {
			roots = append(roots, id)
			x.markSubtree(id)
		}
	}

	for _, id := range x.order {
		if x.byID[id].mark != markUnvisited {
			continue
		}
		entry := x.findCycleEntry(id)
		x.severPrimary(entry)
		roots = append(roots, entry)
		severed++
		x.markSubtree(entry)
	}

	slices.SortFunc(roots, func(a, b string) int {
		return compareRecords(x.byID[a].rec, x.byID[b].rec)
	})
	return roots, severed
}

// findCycleEntry walks the primary-parent chain from an unvisited node,
// marking the chain in-progress, until it meets a node already in-progress:
// the cycle's entry point.
func (x *Index) findCycleEntry(start string) string {
	cur := start
	for {
		x.byID[cur].mark = markInProgress
		next := x.byID[cur].primaryParent
		if next == "" || x.byID[next].mark == markDone {
			// An unvisited node's chain cannot reach a finished tree, or
			// the node would have been visited already. Guard anyway.
			return cur
		}
		if x.byID[next].mark == markInProgress {
			return next
		}
		cur = next
	}
}

// markSubtree marks every node reachable from root via child edges as
// done. Cycles are never reachable from a root - a cycle node's parent is
// inside the cycle - so the reachable subgraph is a tree and an explicit
// stack suffices regardless of depth.
func (x *Index) markSubtree(root string) {
	stack := []string{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := x.byID[id]
		if n.mark == markDone {
			continue
		}
		n.mark = markDone
		stack = append(stack, x.childrenOf[id]...)
	}
}

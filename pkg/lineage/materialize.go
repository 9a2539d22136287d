package lineage

import (
	"slices"

	"github.com/mbolaris/tankview/pkg/tree"
)

// Materialize builds the renderer-facing subtree rooted at rootID.
//
// Children are sorted ascending by birth order, then id, and recursively
// materialized. The traversal uses an explicit work stack: a long-running
// simulation can accumulate tens of thousands of generations, which is more
// depth than the call stack should be trusted with.
//
// Every call allocates fresh nodes, so the caller can diff consecutive
// trees by deep equality without aliasing surprises. Returns nil if rootID
// is not in the index.
func (x *Index) Materialize(rootID string) *tree.Node {
	type frame struct {
		id     string
		parent *tree.Node
	}

	var root *tree.Node
	stack := []frame{{id: rootID}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, ok := x.byID[f.id]
		if !ok {
			continue
		}

		kids := slices.Clone(x.childrenOf[f.id])
		slices.SortFunc(kids, func(a, b string) int {
			return compareRecords(x.byID[a].rec, x.byID[b].rec)
		})

		tn := &tree.Node{
			ID: f.id,
			Attributes: map[string]string{
				tree.AttrAlgo: n.rec.Algorithm,
				tree.AttrID:   f.id,
			},
			Color:    n.rec.Color,
			Children: make([]*tree.Node, 0, len(kids)),
		}
		if f.parent == nil {
			root = tn
		} else {
			f.parent.Children = append(f.parent.Children, tn)
		}

		// Push in reverse so children pop - and attach - in sorted order.
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: kids[i], parent: tn})
		}
	}
	return root
}

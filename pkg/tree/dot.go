package tree

import (
	"bytes"
	"fmt"
	"io"
)

// ToDOT returns a Graphviz DOT representation of the tree.
//
// The output is a complete digraph suitable for the dot tool or any other
// Graphviz frontend. Lineage nodes are filled with their display color and
// labeled with their strategy label and ID; the synthetic super-root, if
// present, is drawn as a small gray point so multi-root forests stay
// readable.
//
// Child order in the output matches the tree's deterministic sibling order,
// so the same snapshot always produces byte-identical DOT text.
func ToDOT(root *Node) string {
	var buf bytes.Buffer
	_ = WriteDOT(root, &buf)
	return buf.String()
}

// WriteDOT writes the DOT representation of the tree to w.
// A nil root produces an empty digraph.
func WriteDOT(root *Node, w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("digraph lineage {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	if root != nil {
		writeDOTNodes(&buf, root)
	}

	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// writeDOTNodes emits declarations and edges depth-first from root. The
// walk uses an explicit stack, like the other traversals in this package,
// so lineage depth is never limited by the call stack.
func writeDOTNodes(buf *bytes.Buffer, root *Node) {
	type frame struct {
		node   *Node
		parent *Node
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.parent != nil {
			fmt.Fprintf(buf, "  %q -> %q;\n", f.parent.ID, f.node.ID)
		}
		if f.node.IsSuperRoot() {
			fmt.Fprintf(buf, "  %q [shape=point, color=gray];\n", f.node.ID)
		} else {
			fmt.Fprintf(buf, "  %q [label=%q, shape=box, style=\"filled,rounded\", fillcolor=%q];\n",
				f.node.ID, dotLabel(f.node), f.node.Color)
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], parent: f.node})
		}
	}
}

// dotLabel builds a two-line label: strategy label on top, ID below.
func dotLabel(n *Node) string {
	algo := n.Attributes[AttrAlgo]
	if algo == "" {
		return n.ID
	}
	return fmt.Sprintf("%s\n%s", algo, n.ID)
}

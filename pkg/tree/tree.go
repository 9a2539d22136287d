// Package tree defines the renderer-facing tree type produced by the
// lineage transformation, together with serialization helpers.
//
// # Overview
//
// The dashboard's tree-drawing widget accepts exactly one rooted tree of
// nodes, each carrying an identifier, display attributes, a color, and an
// ordered list of children. This package is the contract between the
// transformation core ([github.com/mbolaris/tankview/pkg/lineage]) and that
// widget: [Node] is the wire shape, [Marshal] and [ReadTree] move it across the
// boundary, and [Equal] lets the presentation layer skip redundant
// re-renders when two refresh cycles produce identical trees.
//
// # Structure Guarantees
//
// A tree handed to the renderer is finite, acyclic, and single-rooted; every
// node ID appears exactly once. [Validate] checks those guarantees and is
// intended for tests and debugging - trees built by the lineage pipeline
// satisfy them by construction.
//
// # Super-Root
//
// When a snapshot contains several independent lineages, the forest is
// collapsed under an invisible synthetic node with ID [SuperRootID] so the
// renderer's single-root requirement holds without discarding any lineage.
// Use [Node.IsSuperRoot] to distinguish it from real lineage nodes.
package tree

import (
	"errors"
	"fmt"
)

// Attribute keys set on every lineage node's display attributes.
const (
	// AttrAlgo holds the agent's strategy/genome class label.
	AttrAlgo = "Algo"
	// AttrID holds the node's identifier in string form.
	AttrID = "ID"
)

// SuperRootID is the node ID of the synthetic root that wraps a multi-root
// forest. Input records must never use this ID; the lineage builder rejects
// snapshots that do.
const SuperRootID = "__forest__"

// SuperRootColor is the default color of the synthetic super-root. The
// renderer treats it as an invisible grouping node, so the color only shows
// up in debug output.
const SuperRootColor = "#444444"

var (
	// ErrDuplicateNodeID is returned by [Validate] when the same ID appears
	// more than once in the tree. Every record contributes exactly one node.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrSharedNode is returned by [Validate] when the same *Node value is
	// reachable through more than one parent. A shared node means the value
	// is not a tree.
	ErrSharedNode = errors.New("node reachable through multiple parents")
)

// Node is one node of the renderer-facing tree.
//
// Children is never nil for nodes produced by the lineage pipeline - the
// renderer requires the field to be present even for leaves. The order of
// Children is deterministic: ascending birth order, ties broken by ID.
type Node struct {
	ID         string            `json:"id"`
	Attributes map[string]string `json:"displayAttributes"`
	Color      string            `json:"nodeColor"`
	Children   []*Node           `json:"children"`
}

// NewSuperRoot wraps the given roots under a synthetic super-root node.
// The super-root has empty display attributes and the default color; the
// roots keep their order.
func NewSuperRoot(roots []*Node) *Node {
	return &Node{
		ID:         SuperRootID,
		Attributes: map[string]string{},
		Color:      SuperRootColor,
		Children:   roots,
	}
}

// IsSuperRoot reports whether the node is the synthetic forest root.
func (n *Node) IsSuperRoot() bool { return n.ID == SuperRootID }

// Algo returns the strategy label from the node's display attributes.
// Returns "" for the super-root.
func (n *Node) Algo() string { return n.Attributes[AttrAlgo] }

// Count returns the total number of nodes in the tree, including the
// synthetic super-root if present. Returns 0 for a nil tree.
func Count(root *Node) int {
	count := 0
	Walk(root, func(*Node) { count++ })
	return count
}

// CountRecords returns the number of nodes that correspond to lineage
// records, excluding the synthetic super-root. This matches the number of
// records that survived normalization.
func CountRecords(root *Node) int {
	count := Count(root)
	if root != nil && root.IsSuperRoot() {
		count--
	}
	return count
}

// Walk visits every node in the tree, parents before children. The visit
// uses an explicit stack so arbitrarily deep lineages cannot overflow the
// call stack. A nil root is a no-op.
func Walk(root *Node, visit func(*Node)) {
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// Equal reports whether two trees are structurally identical: same IDs,
// attributes, colors, and child order throughout. Two nil trees are equal.
//
// The comparison is iterative, so it is safe on very deep trees.
func Equal(a, b *Node) bool {
	type pair struct{ a, b *Node }
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.a == nil || p.b == nil {
			if p.a != p.b {
				return false
			}
			continue
		}
		if p.a.ID != p.b.ID || p.a.Color != p.b.Color {
			return false
		}
		if len(p.a.Attributes) != len(p.b.Attributes) {
			return false
		}
		for k, v := range p.a.Attributes {
			if other, ok := p.b.Attributes[k]; !ok || other != v {
				return false
			}
		}
		if len(p.a.Children) != len(p.b.Children) {
			return false
		}
		for i := range p.a.Children {
			stack = append(stack, pair{p.a.Children[i], p.b.Children[i]})
		}
	}
	return true
}

// Validate checks that the value rooted at root is a genuine tree: every
// *Node is reachable through exactly one parent and every ID is unique.
// Returns nil for a nil root.
//
// Trees produced by the lineage pipeline satisfy this by construction;
// Validate exists for tests and for callers that assemble trees by hand.
func Validate(root *Node) error {
	if root == nil {
		return nil
	}
	seenIDs := make(map[string]bool)
	seenNodes := make(map[*Node]bool)
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seenNodes[n] {
			return fmt.Errorf("%w: %s", ErrSharedNode, n.ID)
		}
		seenNodes[n] = true
		if seenIDs[n.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
		}
		seenIDs[n.ID] = true
		stack = append(stack, n.Children...)
	}
	return nil
}

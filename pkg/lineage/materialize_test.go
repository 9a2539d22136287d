package lineage

import (
	"testing"

	"github.com/mbolaris/tankview/pkg/tree"
)

func TestMaterialize_ChildOrdering(t *testing.T) {
	// Siblings sort by birth order first, id second.
	x := indexFor(t,
		Record{ID: "1", BirthOrder: 1},
		Record{ID: "10", BirthOrder: 2, ParentIDs: []string{"1"}},
		Record{ID: "9", BirthOrder: 2, ParentIDs: []string{"1"}},
		Record{ID: "2", BirthOrder: 5, ParentIDs: []string{"1"}},
	)

	root := x.Materialize("1")

	got := childIDs(root)
	want := []string{"9", "10", "2"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}
}

func TestMaterialize_NodeFields(t *testing.T) {
	x := indexFor(t,
		Record{ID: "7", Algorithm: "NEAT", Color: "#00aaff"},
	)

	n := x.Materialize("7")

	if n.ID != "7" || n.Color != "#00aaff" {
		t.Errorf("node = %+v, want id 7 color #00aaff", n)
	}
	if n.Algo() != "NEAT" {
		t.Errorf("Algo() = %q, want NEAT", n.Algo())
	}
	if n.Attributes[tree.AttrID] != "7" {
		t.Errorf("Attributes[%q] = %q, want 7", tree.AttrID, n.Attributes[tree.AttrID])
	}
	if n.Children == nil {
		t.Errorf("leaf Children is nil, want an empty slice for the renderer")
	}
}

func TestMaterialize_UnknownRoot(t *testing.T) {
	x := indexFor(t, Record{ID: "1"})

	if got := x.Materialize("404"); got != nil {
		t.Errorf("Materialize(404) = %v, want nil", got)
	}
}

func TestMaterialize_FreshNodesPerCall(t *testing.T) {
	x := indexFor(t,
		Record{ID: "1"},
		Record{ID: "2", ParentIDs: []string{"1"}},
	)

	a := x.Materialize("1")
	b := x.Materialize("1")

	if a == b || a.Children[0] == b.Children[0] {
		t.Errorf("consecutive Materialize calls share nodes; callers need alias-free trees")
	}
	a.Children[0].Color = "#mutated"
	if b.Children[0].Color == "#mutated" {
		t.Errorf("mutating one materialized tree leaked into the other")
	}
}

package tree

import (
	"strconv"
	"strings"
	"testing"
)

func TestToDOT_Nodes(t *testing.T) {
	root := branch("1", leaf("2"))
	out := ToDOT(root)

	for _, want := range []string{
		"digraph lineage {",
		`"1" [label="NEAT\n1"`,
		`fillcolor="#1f77b4"`,
		`"1" -> "2";`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, out)
		}
	}
}

func TestToDOT_SuperRootIsPoint(t *testing.T) {
	forest := NewSuperRoot([]*Node{leaf("1"), leaf("2")})
	out := ToDOT(forest)

	if !strings.Contains(out, `"__forest__" [shape=point`) {
		t.Errorf("super-root not drawn as a point:\n%s", out)
	}
	if !strings.Contains(out, `"__forest__" -> "1";`) || !strings.Contains(out, `"__forest__" -> "2";`) {
		t.Errorf("super-root edges missing:\n%s", out)
	}
}

func TestToDOT_NilTree(t *testing.T) {
	out := ToDOT(nil)

	if !strings.HasPrefix(out, "digraph lineage {") || !strings.HasSuffix(out, "}\n") {
		t.Errorf("ToDOT(nil) = %q, want an empty digraph", out)
	}
}

func TestToDOT_DeepChain(t *testing.T) {
	const depth = 50_000

	node := leaf(strconv.Itoa(depth))
	for i := depth - 1; i > 0; i-- {
		node = branch(strconv.Itoa(i), node)
	}
	out := ToDOT(node)

	lastEdge := `"49999" -> "50000";`
	if !strings.Contains(out, lastEdge) {
		t.Errorf("ToDOT() output missing deepest edge %q", lastEdge)
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	root := branch("1", leaf("2"), leaf("3"))

	if ToDOT(root) != ToDOT(root) {
		t.Errorf("ToDOT() is not deterministic for the same tree")
	}
}

package cli

import (
	"strconv"
	"strings"
	"testing"

	"github.com/mbolaris/tankview/pkg/tree"
)

func textNode(id string, children ...*tree.Node) *tree.Node {
	return &tree.Node{
		ID:         id,
		Attributes: map[string]string{tree.AttrAlgo: "NEAT", tree.AttrID: id},
		Color:      "#1f77b4",
		Children:   children,
	}
}

func TestRenderTreeText_Structure(t *testing.T) {
	root := textNode("1", textNode("2", textNode("4")), textNode("3"))

	out := renderTreeText(root, 0)
	lines := strings.Split(out, "\n")

	if len(lines) != 4 {
		t.Fatalf("rendered %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "1") {
		t.Errorf("first line %q should show the root", lines[0])
	}
	if !strings.Contains(lines[1], "├── ") || !strings.Contains(lines[1], "2") {
		t.Errorf("line %q should branch to 2", lines[1])
	}
	if !strings.Contains(lines[2], "└── ") || !strings.Contains(lines[2], "4") {
		t.Errorf("line %q should close the branch at 4", lines[2])
	}
	if !strings.Contains(lines[3], "└── ") || !strings.Contains(lines[3], "3") {
		t.Errorf("line %q should close the root's children at 3", lines[3])
	}
}

func TestRenderTreeText_DepthLimit(t *testing.T) {
	root := textNode("1", textNode("2", textNode("3", textNode("4"))))

	out := renderTreeText(root, 2)

	if !strings.Contains(out, "2") || !strings.Contains(out, "3") {
		t.Errorf("depth 2 output should include the first two generations:\n%s", out)
	}
	if strings.Contains(out, "4") {
		t.Errorf("depth 2 output should elide the third generation:\n%s", out)
	}
	if !strings.Contains(out, "more") {
		t.Errorf("elided generations should be summarized:\n%s", out)
	}
}

func TestRenderTreeText_DeepChain(t *testing.T) {
	const depth = 1000

	node := textNode(strconv.Itoa(depth))
	for i := depth - 1; i > 0; i-- {
		node = textNode(strconv.Itoa(i), node)
	}

	out := renderTreeText(node, 0)
	lines := strings.Split(out, "\n")

	if len(lines) != depth {
		t.Fatalf("rendered %d lines, want %d", len(lines), depth)
	}
	if !strings.Contains(lines[depth-1], strconv.Itoa(depth)) {
		t.Errorf("last line %q should show the deepest node", lines[depth-1])
	}
}

func TestRenderTreeText_SuperRoot(t *testing.T) {
	forest := tree.NewSuperRoot([]*tree.Node{textNode("1"), textNode("2")})

	out := renderTreeText(forest, 0)

	if strings.Contains(out, tree.SuperRootID) {
		t.Errorf("super-root id should not leak into display output:\n%s", out)
	}
	if !strings.Contains(out, "(forest)") {
		t.Errorf("super-root should render as (forest):\n%s", out)
	}
}

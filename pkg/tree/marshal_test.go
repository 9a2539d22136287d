package tree

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

func TestMarshal_NilTreeIsNull(t *testing.T) {
	data, err := Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal(nil) error: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "null" {
		t.Errorf("Marshal(nil) = %q, want null", got)
	}
}

func TestMarshal_Golden(t *testing.T) {
	root := &Node{
		ID:         "1",
		Attributes: map[string]string{AttrAlgo: "NEAT", AttrID: "1"},
		Color:      "#1f77b4",
		Children: []*Node{
			{
				ID:         "2",
				Attributes: map[string]string{AttrAlgo: "hillclimber", AttrID: "2"},
				Color:      "#ff7f0e",
				Children:   []*Node{},
			},
		},
	}

	data, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "lineage_tree", data)
}

func TestReadTree_RoundTrip(t *testing.T) {
	want := branch("1", branch("2", leaf("4")), leaf("3"))

	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	got, err := ReadTree(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadTree() error: %v", err)
	}

	if !Equal(want, got) {
		t.Errorf("round trip changed the tree")
	}
}

func TestReadTree_Null(t *testing.T) {
	got, err := ReadTree(strings.NewReader("null"))
	if err != nil {
		t.Fatalf("ReadTree(null) error: %v", err)
	}
	if got != nil {
		t.Errorf("ReadTree(null) = %v, want nil", got)
	}
}

func TestReadTree_Invalid(t *testing.T) {
	if _, err := ReadTree(strings.NewReader("{not json")); err == nil {
		t.Errorf("ReadTree on garbage succeeded, want error")
	}
}

func TestWriteTreeFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	want := branch("1", leaf("2"))

	if err := WriteTreeFile(want, path); err != nil {
		t.Fatalf("WriteTreeFile() error: %v", err)
	}
	got, err := ReadTreeFile(path)
	if err != nil {
		t.Fatalf("ReadTreeFile() error: %v", err)
	}

	if !Equal(want, got) {
		t.Errorf("file round trip changed the tree")
	}
}

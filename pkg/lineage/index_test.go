package lineage

import (
	"slices"
	"testing"
)

// indexFor is a test helper: normalize then index, input order irrelevant.
func indexFor(t *testing.T, records ...Record) *Index {
	t.Helper()
	canonical, _ := Normalize(records)
	return BuildIndex(canonical)
}

func TestBuildIndex_SingleParent(t *testing.T) {
	x := indexFor(t,
		Record{ID: "1"},
		Record{ID: "2", ParentIDs: []string{"1"}},
	)

	if got := x.PrimaryParent("2"); got != "1" {
		t.Errorf("PrimaryParent(2) = %q, want 1", got)
	}
	if got := x.SecondaryParent("2"); got != "" {
		t.Errorf("SecondaryParent(2) = %q, want empty", got)
	}
	if kids := x.Children("1"); !slices.Equal(kids, []string{"2"}) {
		t.Errorf("Children(1) = %v, want [2]", kids)
	}
}

func TestBuildIndex_TwoParentsSmallerIDIsPrimary(t *testing.T) {
	x := indexFor(t,
		Record{ID: "2"},
		Record{ID: "3"},
		Record{ID: "5", ParentIDs: []string{"3", "2"}}, // listed larger first
	)

	if got := x.PrimaryParent("5"); got != "2" {
		t.Errorf("PrimaryParent(5) = %q, want 2", got)
	}
	if got := x.SecondaryParent("5"); got != "3" {
		t.Errorf("SecondaryParent(5) = %q, want 3", got)
	}
	if kids := x.Children("3"); len(kids) != 0 {
		t.Errorf("Children(3) = %v, want none: the second parent is not a structural edge", kids)
	}
}

func TestBuildIndex_UnknownParentPromotesOrphan(t *testing.T) {
	x := indexFor(t,
		Record{ID: "7", ParentIDs: []string{"404"}},
	)

	if got := x.PrimaryParent("7"); got != "" {
		t.Errorf("PrimaryParent(7) = %q, want empty: unknown parents promote to root", got)
	}
}

func TestBuildIndex_DuplicateParentEntriesCollapse(t *testing.T) {
	x := indexFor(t,
		Record{ID: "1"},
		Record{ID: "2", ParentIDs: []string{"1", "1"}},
	)

	if got := x.PrimaryParent("2"); got != "1" {
		t.Errorf("PrimaryParent(2) = %q, want 1", got)
	}
	if got := x.SecondaryParent("2"); got != "" {
		t.Errorf("SecondaryParent(2) = %q, want empty for a repeated parent", got)
	}
	if kids := x.Children("1"); !slices.Equal(kids, []string{"2"}) {
		t.Errorf("Children(1) = %v, want [2] exactly once", kids)
	}
}

func TestBuildIndex_SelfParentKept(t *testing.T) {
	// A record naming itself as parent forms a one-node cycle; the index
	// records the edge as-is and leaves severing to root resolution.
	x := indexFor(t,
		Record{ID: "1", ParentIDs: []string{"1"}},
	)

	if got := x.PrimaryParent("1"); got != "1" {
		t.Errorf("PrimaryParent(1) = %q, want 1", got)
	}
}

func TestBuildIndex_Len(t *testing.T) {
	x := indexFor(t, Record{ID: "1"}, Record{ID: "2"})

	if x.Len() != 2 {
		t.Errorf("Len() = %d, want 2", x.Len())
	}
	if _, ok := x.Record("missing"); ok {
		t.Errorf("Record(missing) found a record, want miss")
	}
}

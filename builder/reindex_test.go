package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAutoNumber(t *testing.T) {
	tests := []struct {
		label, tag string
		n          int
		ok         bool
	}{
		{"row_0", "row", 0, true},
		{"row_12", "row", 12, true},
		{"row_", "row", 0, false},
		{"row_x", "row", 0, false},
		{"row_007", "row", 0, false},
		{"row_-1", "row", 0, false},
		{"other_1", "row", 0, false},
		{"row", "row", 0, false},
	}
	for _, tt := range tests {
		n, ok := autoNumber(tt.label, tt.tag)
		if n != tt.n || ok != tt.ok {
			t.Errorf("autoNumber(%q, %q)=(%d, %v), want (%d, %v)",
				tt.label, tt.tag, n, ok, tt.n, tt.ok)
		}
	}
}

func TestReindex(t *testing.T) {
	b := New(nil)
	for i := 0; i < 4; i++ {
		b.Leaf("row", i)
	}
	b.Leaf("cell", "c")
	b.Store().Delete("row_0")
	b.Store().Delete("row_2")

	b.Reindex()

	want := []string{"row_0", "row_1", "cell_0"}
	if diff := cmp.Diff(want, b.Store().Keys()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	// Relative order survives: former row_1 and row_3 keep their order.
	if v, _ := b.Store().Get("row_0"); v != 1 {
		t.Errorf("row_0=%v, want 1", v)
	}
	if v, _ := b.Store().Get("row_1"); v != 3 {
		t.Errorf("row_1=%v, want 3", v)
	}
	// Counters reset: the next label continues from the group size.
	n := b.Leaf("row", 9)
	if n.Label() != "row_2" {
		t.Errorf("after reindex got %q, want row_2", n.Label())
	}
}

func TestReindexIdempotent(t *testing.T) {
	b := New(nil)
	for i := 0; i < 3; i++ {
		b.Leaf("row", i)
	}
	b.Store().Delete("row_1")
	b.Reindex()
	before := b.Store().Keys()
	b.Reindex()
	if diff := cmp.Diff(before, b.Store().Keys()); diff != "" {
		t.Errorf("second reindex changed labels: (-want +got)\n%s", diff)
	}
}

func TestReindexKeepsExplicitLabels(t *testing.T) {
	b := New(nil)
	b.Leaf("row", 0)
	b.Leaf("row", 1, Label("pinned"))
	b.Leaf("row", 2)
	b.Store().Delete("row_0")
	b.Reindex()
	want := []string{"pinned", "row_0"}
	if diff := cmp.Diff(want, b.Store().Keys()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

// An untagged node whose explicit label matches the generated pattern must
// not abort renumbering; its slot is skipped over.
func TestReindexSkipsForeignLabels(t *testing.T) {
	b := New(nil)
	b.Leaf("div", 0)
	b.Store().Set("div_1", "plain")
	b.Leaf("div", 2)

	b.Reindex()
	want := []string{"div_0", "div_1", "div_2"}
	if diff := cmp.Diff(want, b.Store().Keys()); diff != "" {
		t.Fatalf("(-want +got)\n%s", diff)
	}
	if b.Store().Node("div_1").Tag() != "" {
		t.Error("foreign node was renumbered")
	}

	// With div_0 gone the tagged group compacts around the foreign slot.
	b.Store().Delete("div_0")
	b.Reindex()
	if diff := cmp.Diff([]string{"div_1", "div_0"}, b.Store().Keys()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if b.Store().Node("div_0").Tag() != "div" {
		t.Error("tagged node lost its tag through relabeling")
	}
}

func TestReindexRecurses(t *testing.T) {
	b := New(nil)
	sub := b.Child("box")
	sub.Leaf("row", 0)
	sub.Leaf("row", 1)
	sub.Store().Delete("row_0")
	b.Reindex()
	if diff := cmp.Diff([]string{"row_0"}, sub.Store().Keys()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

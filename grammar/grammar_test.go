package grammar

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/softwell/genro-treestore/go-treestore/card"
)

func TestElementAliases(t *testing.T) {
	g := New()
	g.MustElement("ul,ol", Children(map[string]string{"li": "+"}))
	for _, tag := range []string{"ul", "ol"} {
		cfg := g.Config(tag)
		if cfg == nil {
			t.Fatalf("no config for %q", tag)
		}
		if got := cfg.Children()["li"]; got != (card.Range{Min: 1, Max: card.Unbounded}) {
			t.Errorf("%q li range %v", tag, got)
		}
	}
	if g.Config("ul") != g.Config("ol") {
		t.Error("alias tags should share one config")
	}
}

func TestElementRedeclareLastWins(t *testing.T) {
	g := New()
	g.MustElement("p", Children(map[string]string{"span": "*"}))
	g.MustElement("p", Children(map[string]string{"em": "?"}))
	cfg := g.Config("p")
	if _, ok := cfg.Children()["span"]; ok {
		t.Error("redeclaration should replace the earlier rule")
	}
	if _, ok := cfg.Children()["em"]; !ok {
		t.Error("redeclared rule missing")
	}
}

func TestBadCardinalityFailsAtDefinition(t *testing.T) {
	g := New()
	err := g.Element("x", Children(map[string]string{"y": "nope"}))
	if !errors.Is(err, card.ErrBadSpec) {
		t.Errorf("got %v, want card.ErrBadSpec", err)
	}
	if err := g.Element("x", ChildSpecs("y[1-3]")); !errors.Is(err, card.ErrBadSpec) {
		t.Errorf("got %v, want card.ErrBadSpec", err)
	}
	if err := g.Element(""); err == nil {
		t.Error("empty tag list should fail")
	}
}

func TestParentsRule(t *testing.T) {
	g := New()
	g.MustElement("li", Parents("ul, ol"))
	cfg := g.Config("li")
	if !cfg.HasParentRule() {
		t.Fatal("parent rule missing")
	}
	if !cfg.AllowsParent("ul") || !cfg.AllowsParent("ol") {
		t.Error("declared parents rejected")
	}
	if cfg.AllowsParent("div") {
		t.Error("undeclared parent accepted")
	}
	if diff := cmp.Diff([]string{"ol", "ul"}, cfg.Parents()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	// No rule accepts anything.
	g.MustElement("div")
	if !g.Config("div").AllowsParent("whatever") {
		t.Error("tag without parent rule should accept any parent")
	}
}

func TestGroupsAndExpandName(t *testing.T) {
	g := New()
	g.MustGroup("inline", "span,a,em")
	g.MustElement("div")

	tests := []struct {
		name string
		want []string
	}{
		{"inline", []string{"span", "a", "em"}},
		{"div", []string{"div"}},
		// Unknown names pass through as literal tags.
		{"custom", []string{"custom"}},
		{"div,inline", []string{"div", "span", "a", "em"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, g.ExpandName(tt.name)); diff != "" {
			t.Errorf("ExpandName(%q): (-want +got)\n%s", tt.name, diff)
		}
	}
	if diff := cmp.Diff([]string{"inline"}, g.Groups()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if diff := cmp.Diff([]string{"span", "a", "em"}, g.GroupTags("inline")); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestGroupSharedRule(t *testing.T) {
	g := New()
	g.MustGroup("inline", "span,a,em", Children(map[string]string{"inline": "*"}))
	for _, tag := range []string{"span", "a", "em"} {
		cfg := g.Config(tag)
		if cfg == nil {
			t.Fatalf("group rule did not declare %q", tag)
		}
		if _, ok := cfg.Children()["inline"]; !ok {
			t.Errorf("%q lost the shared children table", tag)
		}
	}
	// A tag declared but a group named the same: the tag wins on expansion.
	g.MustElement("inline")
	if diff := cmp.Diff([]string{"inline"}, g.ExpandName("inline")); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

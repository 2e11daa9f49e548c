package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/softwell/genro-treestore/go-treestore/card"
)

const listDef = `
groups:
  - name: inline
    tags: span,a,em
    children: { inline: "*" }
elements:
  - tag: ul,ol
    children: { li: "+" }
  - tag: li
    parents: ul,ol
`

func TestLoad(t *testing.T) {
	g, err := Load(strings.NewReader(listDef))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"span", "a", "em"}, g.GroupTags("inline")); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if got := g.Config("ul").Children()["li"]; got != (card.Range{Min: 1, Max: card.Unbounded}) {
		t.Errorf("li range %v", got)
	}
	if !g.Config("li").HasParentRule() {
		t.Error("li parent rule missing")
	}
	if g.Config("span") == nil {
		t.Error("group rule did not declare its tags")
	}
}

func TestLoadBadYAML(t *testing.T) {
	if _, err := Load(strings.NewReader("elements: {not a list}")); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestLoadBadCardinality(t *testing.T) {
	def := `
elements:
  - tag: x
    children: { y: "bogus" }
`
	_, err := Load(strings.NewReader(def))
	if !errors.Is(err, card.ErrBadSpec) {
		t.Errorf("got %v, want card.ErrBadSpec", err)
	}
}

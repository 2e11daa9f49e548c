package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	treestore "github.com/softwell/genro-treestore/go-treestore"
)

func sample() *treestore.Store {
	s := treestore.New()
	s.Set("list", nil, treestore.WithTag("ul"))
	s.Set("list.item_0", "milk", treestore.WithTag("li"), treestore.WithAttr("done", true))
	s.Set("list.item_1", "eggs", treestore.WithTag("li"))
	s.Set("note", "remember")
	return s
}

func TestSelectPaths(t *testing.T) {
	s := sample()
	tests := []struct {
		src  string
		want []string
	}{
		{`tag == "li"`, []string{"list.item_0", "list.item_1"}},
		{`tag == "li" && attr["done"] == true`, []string{"list.item_0"}},
		{`isBranch`, []string{"list"}},
		{`value == "remember"`, []string{"note"}},
		{`depth == 1`, []string{"list.item_0", "list.item_1"}},
		{`label startsWith "item"`, []string{"list.item_0", "list.item_1"}},
		{`tag == "nope"`, nil},
	}
	for _, tt := range tests {
		q, err := Compile(tt.src)
		if err != nil {
			t.Errorf("%s: %v", tt.src, err)
			continue
		}
		got, err := q.SelectPaths(s)
		if err != nil {
			t.Errorf("%s: %v", tt.src, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s: (-want +got)\n%s", tt.src, diff)
		}
	}
}

func TestSelectNodes(t *testing.T) {
	s := sample()
	nodes, err := MustCompile(`tag == "li"`).Select(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 2 || nodes[0].Value() != "milk" {
		t.Errorf("Select=%v", nodes)
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := Compile(`tag ==`); err == nil {
		t.Error("syntax error should fail compilation")
	}
	// Non-boolean expressions are rejected at compile time.
	if _, err := Compile(`label`); err == nil {
		t.Error("non-boolean expression should fail compilation")
	}
}

func TestBranchValueIsNil(t *testing.T) {
	s := sample()
	got, err := MustCompile(`isBranch && value == nil`).SelectPaths(s)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"list"}, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

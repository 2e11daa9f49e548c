package htmlgrammar

import (
	"errors"
	"testing"

	"github.com/softwell/genro-treestore/go-treestore/builder"
	"github.com/softwell/genro-treestore/go-treestore/grammar"
)

func TestGrammarIsSatisfiable(t *testing.T) {
	if err := New().Check(); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestValidDocument(t *testing.T) {
	g := New()
	b := builder.New(g)
	doc := b.Child("html")
	head := doc.Child("head")
	head.Leaf("title", "hello")
	body := doc.Child("body")
	ul := body.Child("ul")
	ul.Leaf("li", "one")
	ul.Leaf("li", "two")
	p := body.Child("p")
	p.Leaf("span", "inline text")

	if err := b.Validate(); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}
}

func TestInvalidDocuments(t *testing.T) {
	g := New()

	// html without head.
	b := builder.New(g)
	doc := b.Child("html")
	doc.Child("body")
	if err := b.Validate(); !errors.Is(err, grammar.ErrMissingChild) {
		t.Errorf("got %v, want ErrMissingChild", err)
	}

	// li outside a list.
	b = builder.New(g)
	div := b.Child("div")
	div.Leaf("li", "stray")
	err := b.Validate()
	if !errors.Is(err, grammar.ErrInvalidParent) {
		t.Errorf("got %v, want ErrInvalidParent", err)
	}
	if !errors.Is(err, grammar.ErrInvalidChild) {
		t.Errorf("got %v, want ErrInvalidChild too (li is not flow or phrasing)", err)
	}

	// empty list.
	b = builder.New(g)
	b.Child("ul")
	if err := b.Validate(); !errors.Is(err, grammar.ErrMissingChild) {
		t.Errorf("got %v, want ErrMissingChild", err)
	}
}

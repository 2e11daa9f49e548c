package grammar_test

import (
	"errors"
	"testing"

	treestore "github.com/softwell/genro-treestore/go-treestore"
	"github.com/softwell/genro-treestore/go-treestore/builder"
	"github.com/softwell/genro-treestore/go-treestore/grammar"
)

func listGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g := grammar.New()
	g.MustElement("ul", grammar.Children(map[string]string{"li": "1:3"}))
	g.MustElement("li", grammar.Parents("ul,ol"))
	return g
}

func TestValidateOK(t *testing.T) {
	g := listGrammar(t)
	b := builder.New(g)
	ul, err := b.Tag("ul")
	if err != nil {
		t.Fatal(err)
	}
	ul.Leaf("li", "one")
	ul.Leaf("li", "two")
	if err := g.Validate(b.Store()); err != nil {
		t.Fatalf("valid tree rejected: %v", err)
	}
}

func TestValidateTooManyChildren(t *testing.T) {
	g := listGrammar(t)
	b := builder.New(g)
	ul, _ := b.Tag("ul")
	for range 4 {
		ul.Leaf("li", nil)
	}
	err := g.Validate(b.Store())
	if !errors.Is(err, grammar.ErrTooManyChildren) {
		t.Fatalf("got %v, want ErrTooManyChildren", err)
	}
	viols := grammar.Violations(err)
	if len(viols) != 1 {
		t.Fatalf("got %d violations, want 1", len(viols))
	}
	v := viols[0]
	if v.Tag != "li" || v.ParentTag != "ul" || v.Count != 4 || v.Want.Max != 3 {
		t.Errorf("violation %+v", v)
	}
}

func TestValidateMissingChild(t *testing.T) {
	g := listGrammar(t)
	b := builder.New(g)
	if _, err := b.Tag("ul"); err != nil {
		t.Fatal(err)
	}
	err := g.Validate(b.Store())
	if !errors.Is(err, grammar.ErrMissingChild) {
		t.Fatalf("got %v, want ErrMissingChild", err)
	}
}

func TestValidateInvalidParent(t *testing.T) {
	g := listGrammar(t)
	g.MustElement("div")
	s := treestore.New()
	div, _ := s.Set("box", nil, treestore.WithTag("div"))
	div.Set("item", "x", treestore.WithTag("li"))
	err := g.Validate(s)
	if !errors.Is(err, grammar.ErrInvalidParent) {
		t.Fatalf("got %v, want ErrInvalidParent", err)
	}
}

func TestValidateInvalidChild(t *testing.T) {
	g := grammar.New()
	g.MustGroup("inline", "span,a,em")
	g.MustElement("span,a,em")
	g.MustElement("p", grammar.Children(map[string]string{"inline": "*"}))
	g.MustElement("div")

	s := treestore.New()
	p, _ := s.Set("par", nil, treestore.WithTag("p"))
	p.Set("s1", "ok", treestore.WithTag("span"))
	p.Set("a1", "ok", treestore.WithTag("a"))
	if err := g.Validate(s); err != nil {
		t.Fatalf("group members rejected: %v", err)
	}

	p.Set("d1", nil, treestore.WithTag("div"))
	err := g.Validate(s)
	if !errors.Is(err, grammar.ErrInvalidChild) {
		t.Fatalf("got %v, want ErrInvalidChild", err)
	}
	v := grammar.Violations(err)[0]
	if v.Tag != "div" || v.ParentTag != "p" {
		t.Errorf("violation %+v", v)
	}
	if len(v.Allowed) != 3 {
		t.Errorf("allowed=%v, want the expanded group", v.Allowed)
	}
}

// A nested scenario with one required appliance per room: every violation is
// collected in a single pass, not just the first.
func TestValidateCollectsAll(t *testing.T) {
	g := grammar.New()
	g.MustElement("apartment", grammar.Children(map[string]string{"kitchen": "1", "bedroom": "*"}))
	g.MustElement("kitchen", grammar.Children(map[string]string{"fridge": "1"}))
	g.MustElement("bedroom")
	g.MustElement("fridge", grammar.Parents("kitchen"))

	s := treestore.New()
	apt, _ := s.Set("home", nil, treestore.WithTag("apartment"))
	k, _ := apt.Set("k", nil, treestore.WithTag("kitchen"))
	k.Set("f1", nil, treestore.WithTag("fridge"))
	k.Set("f2", nil, treestore.WithTag("fridge"))
	bed, _ := apt.Set("b", nil, treestore.WithTag("bedroom"))
	bed.Set("f3", nil, treestore.WithTag("fridge"))

	err := g.Validate(s)
	if err == nil {
		t.Fatal("invalid tree accepted")
	}
	if !errors.Is(err, grammar.ErrTooManyChildren) {
		t.Error("two fridges in the kitchen not reported")
	}
	if !errors.Is(err, grammar.ErrInvalidParent) {
		t.Error("fridge in the bedroom not reported")
	}
	if got := len(grammar.Violations(err)); got != 2 {
		t.Errorf("got %d violations, want 2: %v", got, err)
	}
}

func TestValidateSkipsUntagged(t *testing.T) {
	g := listGrammar(t)
	s := treestore.New()
	// A fully untagged subtree is outside the grammar.
	s.Set("config.anything.goes", 1)
	if err := g.Validate(s); err != nil {
		t.Errorf("untagged tree rejected: %v", err)
	}
}

func TestValidateNoGrammar(t *testing.T) {
	var g *grammar.Grammar
	if err := g.Validate(treestore.New()); !errors.Is(err, grammar.ErrNoGrammar) {
		t.Errorf("got %v, want ErrNoGrammar", err)
	}
}

package grammar

import (
	"errors"
	"testing"
)

func TestCheckOK(t *testing.T) {
	g := New()
	g.MustElement("ul,ol", Children(map[string]string{"li": "+"}))
	g.MustElement("li", Parents("ul,ol"))
	g.MustElement("div", Children(map[string]string{"div": "*"}))
	if err := g.Check(); err != nil {
		t.Errorf("satisfiable grammar rejected: %v", err)
	}
}

// A tag whose required child is itself can never bottom out.
func TestCheckRequiredSelfCycle(t *testing.T) {
	g := New()
	g.MustElement("turtle", Children(map[string]string{"turtle": "+"}))
	err := g.Check()
	if !errors.Is(err, ErrUnsatisfiable) {
		t.Errorf("got %v, want ErrUnsatisfiable", err)
	}
}

func TestCheckMutualRequiredCycle(t *testing.T) {
	g := New()
	g.MustElement("a", Children(map[string]string{"b": "1"}))
	g.MustElement("b", Children(map[string]string{"a": "1"}))
	if err := g.Check(); !errors.Is(err, ErrUnsatisfiable) {
		t.Errorf("got %v, want ErrUnsatisfiable", err)
	}
}

// Optional self-reference is fine: the empty expansion satisfies it.
func TestCheckOptionalCycle(t *testing.T) {
	g := New()
	g.MustElement("nested", Children(map[string]string{"nested": "*"}))
	if err := g.Check(); err != nil {
		t.Errorf("got %v, want nil", err)
	}
}

// A required child whose parent rule rejects the requiring tag is a
// contradiction.
func TestCheckParentContradiction(t *testing.T) {
	g := New()
	g.MustElement("form", Children(map[string]string{"input": "1"}))
	g.MustElement("input", Parents("fieldset"))
	g.MustElement("fieldset")
	err := g.Check()
	if !errors.Is(err, ErrUnsatisfiable) {
		t.Errorf("got %v, want ErrUnsatisfiable", err)
	}
}

package grammar

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/softwell/genro-treestore/go-treestore/debug"
)

// Check reports declared tags that no finite tree can satisfy: required
// children that recurse into themselves with no escape, and required
// children whose parent rule rejects the very tag requiring them. Such
// rules are configuration errors; Validate would reject every tree using
// them, so catching them at definition time is cheaper.
func (g *Grammar) Check() error {
	var errs []error
	for _, tag := range g.Tags() {
		b := newSatBuilder(g)
		lit := b.build(tag, map[string]bool{})
		if !b.satisfiable(lit) {
			errs = append(errs, fmt.Errorf(
				"%w: tag %q has a required-child cycle or contradiction, no finite tree exists",
				ErrUnsatisfiable, tag))
		}
	}
	return errors.Join(errs...)
}

// satBuilder turns grammar rules into a logic circuit: a tag's literal is
// true iff a finite valid subtree rooted at that tag exists. A required
// child reached again while still deriving it is constant false, the same
// self-reference rule the satisfiability check of a schema definition uses.
type satBuilder struct {
	g    *Grammar
	c    *logic.C
	vars map[string]z.Lit
}

func newSatBuilder(g *Grammar) *satBuilder {
	return &satBuilder{
		g:    g,
		c:    logic.NewC(),
		vars: map[string]z.Lit{},
	}
}

func (b *satBuilder) build(tag string, onStack map[string]bool) z.Lit {
	if onStack[tag] {
		return b.c.F
	}
	cfg := b.g.Config(tag)
	children := cfg.Children()
	if len(children) == 0 {
		return b.c.T
	}

	onStack[tag] = true
	defer delete(onStack, tag)

	acc := b.c.T
	expanded := b.g.expandChildren(children)
	for _, childTag := range slices.Sorted(maps.Keys(expanded)) {
		rng := expanded[childTag]
		if rng.Min == 0 {
			continue
		}
		if ccfg := b.g.Config(childTag); ccfg.HasParentRule() && !ccfg.AllowsParent(tag) {
			if debug.Grammar() {
				debug.Logf("check: %q requires %q, which rejects %q as parent", tag, childTag, tag)
			}
			acc = b.c.And(acc, b.c.F)
			continue
		}
		acc = b.c.And(acc, b.build(childTag, onStack))
	}
	return acc
}

func (b *satBuilder) satisfiable(formula z.Lit) bool {
	s := gini.New()
	b.c.ToCnf(s)
	s.Assume(formula)
	return s.Solve() == 1
}

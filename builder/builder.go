// Package builder grows treestore trees with auto-generated labels and
// grammar-driven tag dispatch.
//
// A Builder is a cursor over one container of a tree. Child and Leaf create
// tagged nodes labeled "{tag}_{n}" with a per-container counter that only
// ever increases, so labels stay unique even after deletions. Construction
// never checks structure; call Validate for an explicit pass against the
// attached grammar.
package builder

import (
	"fmt"
	"maps"

	"github.com/softwell/genro-treestore/go-treestore"
	"github.com/softwell/genro-treestore/go-treestore/grammar"
)

// Builder is a construction cursor over one container. Builders over
// branches of the same tree share the grammar and a registry, so revisiting
// a branch yields the same cursor and counters.
type Builder struct {
	store    *treestore.Store
	counters map[string]int
	shared   *shared
}

type shared struct {
	g        *grammar.Grammar
	builders map[*treestore.Store]*Builder
}

// New makes a root Builder over an empty store. The grammar may be nil; it
// is then unavailable to Tag and Validate.
func New(g *grammar.Grammar) *Builder {
	return Wrap(treestore.New(), g)
}

// Wrap makes a Builder over an existing store.
func Wrap(s *treestore.Store, g *grammar.Grammar) *Builder {
	sh := &shared{g: g, builders: map[*treestore.Store]*Builder{}}
	return sh.at(s)
}

func (sh *shared) at(s *treestore.Store) *Builder {
	if b, ok := sh.builders[s]; ok {
		return b
	}
	b := &Builder{store: s, counters: map[string]int{}, shared: sh}
	sh.builders[s] = b
	return b
}

// Store returns the container under this cursor.
func (b *Builder) Store() *treestore.Store { return b.store }

// Grammar returns the attached grammar, nil when none.
func (b *Builder) Grammar() *grammar.Grammar { return b.shared.g }

type childOpts struct {
	label    string
	attrs    map[string]any
	position string
}

// ChildOption configures Child, Leaf and Tag.
type ChildOption func(*childOpts)

// Label sets an explicit label instead of an auto-generated one.
func Label(label string) ChildOption {
	return func(o *childOpts) { o.label = label }
}

// Attrs merges attributes onto the new node.
func Attrs(attrs map[string]any) ChildOption {
	return func(o *childOpts) {
		if o.attrs == nil {
			o.attrs = map[string]any{}
		}
		maps.Copy(o.attrs, attrs)
	}
}

// Attr sets one attribute on the new node.
func Attr(name string, value any) ChildOption {
	return func(o *childOpts) {
		if o.attrs == nil {
			o.attrs = map[string]any{}
		}
		o.attrs[name] = value
	}
}

// At applies an insertion position directive (treestore position syntax).
func At(position string) ChildOption {
	return func(o *childOpts) { o.position = position }
}

// nextLabel generates "{tag}_{n}". The counter is monotonic per tag within
// this container and never reused, even after deletions.
func (b *Builder) nextLabel(tag string) string {
	for {
		n := b.counters[tag]
		b.counters[tag] = n + 1
		label := fmt.Sprintf("%s_%d", tag, n)
		if b.store.Node(label) == nil {
			return label
		}
	}
}

func (b *Builder) applyOpts(tag string, opts []ChildOption) *childOpts {
	o := &childOpts{}
	for _, opt := range opts {
		opt(o)
	}
	if o.label == "" {
		o.label = b.nextLabel(tag)
	}
	return o
}

// Child adds a tagged branch node and returns the Builder cursor over the
// new branch, grammar propagated. No structural validation happens here.
// Labels are literal, never paths: a Label with '.' or '?' makes one child.
func (b *Builder) Child(tag string, opts ...ChildOption) *Builder {
	o := b.applyOpts(tag, opts)
	node := b.store.Node(o.label)
	if node == nil || node.Branch() == nil {
		node = b.store.Insert(o.label, treestore.New(),
			treestore.WithTag(tag),
			treestore.WithAttrs(o.attrs),
			treestore.AtPosition(o.position))
	} else {
		node.SetTag(tag)
		if o.attrs != nil {
			node.SetAttrs(o.attrs)
		}
	}
	return b.shared.at(node.Branch())
}

// Leaf adds a tagged leaf node and returns it. Labels are literal, as in
// Child; a nil value makes a nil-valued leaf.
func (b *Builder) Leaf(tag string, value any, opts ...ChildOption) *treestore.Node {
	o := b.applyOpts(tag, opts)
	return b.store.Insert(o.label, value,
		treestore.WithTag(tag),
		treestore.WithAttrs(o.attrs),
		treestore.AtPosition(o.position))
}

// Tag adds a branch child through the grammar's tag table and runs the
// tag's handler when one is declared. Handler errors surface; they are
// construction errors, not structural validation.
func (b *Builder) Tag(tag string, opts ...ChildOption) (*Builder, error) {
	var h grammar.Handler
	if g := b.shared.g; g != nil {
		h = g.Config(tag).Handler()
	}
	o := &childOpts{}
	for _, opt := range opts {
		opt(o)
	}
	child := b.Child(tag, opts...)
	if h != nil {
		if err := h(sink{child}, o.attrs); err != nil {
			return nil, fmt.Errorf("handler for %q: %w", tag, err)
		}
	}
	return child, nil
}

// sink adapts Builder to the grammar handler interface.
type sink struct {
	b *Builder
}

func (s sink) Child(tag string, attrs map[string]any) grammar.Sink {
	return sink{s.b.Child(tag, Attrs(attrs))}
}

func (s sink) Leaf(tag string, value any, attrs map[string]any) {
	s.b.Leaf(tag, value, Attrs(attrs))
}

// In returns the Builder cursor for an existing branch at path.
func (b *Builder) In(path string) (*Builder, error) {
	node, err := b.store.GetNode(path)
	if err != nil {
		return nil, err
	}
	sub := node.Branch()
	if sub == nil {
		return nil, fmt.Errorf("%w: %q", treestore.ErrNotABranch, path)
	}
	return b.shared.at(sub), nil
}

// ByTag returns the direct children with the given tag, in order.
func (b *Builder) ByTag(tag string) []*treestore.Node {
	return b.store.ByTag(tag)
}

// Validate checks the tree under this cursor against the attached grammar.
// See grammar.Grammar.Validate for the collect-all contract.
func (b *Builder) Validate() error {
	if b.shared.g == nil {
		return grammar.ErrNoGrammar
	}
	return b.shared.g.Validate(b.store)
}

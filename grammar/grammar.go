package grammar

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/softwell/genro-treestore/go-treestore/card"
)

// Sink is the construction access handed to handlers. The builder package
// implements it.
type Sink interface {
	// Child adds a branch child with an auto-generated label and returns a
	// Sink over the new branch.
	Child(tag string, attrs map[string]any) Sink
	// Leaf adds a leaf child with an auto-generated label.
	Leaf(tag string, value any, attrs map[string]any)
}

// Handler is an optional per-tag construction callback, run by the builder
// after it creates a branch child with that tag.
type Handler func(child Sink, attrs map[string]any) error

// Config is the resolved rule for one tag. Children table keys may name
// tags or groups; they expand at validation time.
type Config struct {
	children map[string]card.Range
	parents  map[string]struct{}
	handler  Handler
}

// Children returns the raw children table, nil when the tag declares none.
// The map is shared; callers must not mutate it.
func (c *Config) Children() map[string]card.Range {
	if c == nil {
		return nil
	}
	return c.children
}

// HasParentRule reports whether the tag constrains its parents.
func (c *Config) HasParentRule() bool {
	return c != nil && len(c.parents) > 0
}

// AllowsParent reports whether tag is an accepted parent. Tags with no
// parent rule accept any parent.
func (c *Config) AllowsParent(tag string) bool {
	if !c.HasParentRule() {
		return true
	}
	_, ok := c.parents[tag]
	return ok
}

// Parents returns the accepted parent tags, sorted.
func (c *Config) Parents() []string {
	return slices.Sorted(maps.Keys(c.parents))
}

// Handler returns the tag's construction callback, nil when none.
func (c *Config) Handler() Handler {
	if c == nil {
		return nil
	}
	return c.handler
}

// Grammar is a registry of tag rules and named groups. Build it once and
// treat it as read-only afterwards; a built Grammar is safe to share across
// builders.
type Grammar struct {
	configs map[string]*Config
	groups  map[string][]string
}

// New makes an empty Grammar.
func New() *Grammar {
	return &Grammar{
		configs: map[string]*Config{},
		groups:  map[string][]string{},
	}
}

type rule struct {
	children map[string]card.Range
	parents  map[string]struct{}
	handler  Handler
}

// RuleOption configures an Element or Group declaration. Cardinality
// parsing happens here, so malformed specs fail at definition time.
type RuleOption func(*rule) error

// Children sets the allowed children table: key is a tag or group name
// (comma-joined mixes allowed), value a symbolic cardinality spec.
func Children(m map[string]string) RuleOption {
	return func(r *rule) error {
		for name, spec := range m {
			rng, err := card.Parse(spec)
			if err != nil {
				return fmt.Errorf("child %q: %w", name, err)
			}
			r.setChild(name, rng)
		}
		return nil
	}
}

// ChildSpecs sets allowed children in bracket notation: "li[1:3]", "div".
func ChildSpecs(specs ...string) RuleOption {
	return func(r *rule) error {
		for _, spec := range specs {
			name, rng, err := card.ParseTagSpec(spec)
			if err != nil {
				return err
			}
			r.setChild(name, rng)
		}
		return nil
	}
}

// Parents sets the allowed parent tags, comma-joined.
func Parents(tags string) RuleOption {
	return func(r *rule) error {
		if r.parents == nil {
			r.parents = map[string]struct{}{}
		}
		for _, t := range splitTags(tags) {
			r.parents[t] = struct{}{}
		}
		return nil
	}
}

// WithHandler attaches a construction callback to the tag.
func WithHandler(h Handler) RuleOption {
	return func(r *rule) error {
		r.handler = h
		return nil
	}
}

func (r *rule) setChild(name string, rng card.Range) {
	if r.children == nil {
		r.children = map[string]card.Range{}
	}
	r.children[name] = rng
}

// Element declares a rule for one or more comma-joined alias tags. A tag
// declared twice keeps the last declaration.
func (g *Grammar) Element(tags string, opts ...RuleOption) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return fmt.Errorf("element %q: %w", tags, err)
	}
	tagList := splitTags(tags)
	if len(tagList) == 0 {
		return fmt.Errorf("element %q: no tags", tags)
	}
	for _, t := range tagList {
		g.configs[t] = cfg
	}
	return nil
}

// MustElement is Element panicking on configuration errors.
func (g *Grammar) MustElement(tags string, opts ...RuleOption) {
	if err := g.Element(tags, opts...); err != nil {
		panic(err)
	}
}

// Group registers a named set of tags and, when rule options are given,
// declares the shared rule for every tag in the set.
func (g *Grammar) Group(name, tags string, opts ...RuleOption) error {
	tagList := splitTags(tags)
	if name == "" || len(tagList) == 0 {
		return fmt.Errorf("group %q: empty name or tags", name)
	}
	g.groups[name] = tagList
	if len(opts) == 0 {
		return nil
	}
	if err := g.Element(tags, opts...); err != nil {
		return fmt.Errorf("group %q: %w", name, err)
	}
	return nil
}

// MustGroup is Group panicking on configuration errors.
func (g *Grammar) MustGroup(name, tags string, opts ...RuleOption) {
	if err := g.Group(name, tags, opts...); err != nil {
		panic(err)
	}
}

func buildConfig(opts []RuleOption) (*Config, error) {
	r := &rule{}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return &Config{children: r.children, parents: r.parents, handler: r.handler}, nil
}

// Config returns the resolved rule for a tag, nil when undeclared.
func (g *Grammar) Config(tag string) *Config {
	return g.configs[tag]
}

// Tags returns all declared tags, sorted.
func (g *Grammar) Tags() []string {
	return slices.Sorted(maps.Keys(g.configs))
}

// Groups returns all group names, sorted.
func (g *Grammar) Groups() []string {
	return slices.Sorted(maps.Keys(g.groups))
}

// GroupTags returns the tags of a named group, nil when unknown.
func (g *Grammar) GroupTags(name string) []string {
	return slices.Clone(g.groups[name])
}

// ExpandName expands a children-table key to concrete tags: a known tag
// stays as-is, a known group expands to its tag list, and an unknown name
// passes through as a literal tag. Comma-joined mixes expand element-wise.
func (g *Grammar) ExpandName(name string) []string {
	var res []string
	for _, part := range splitTags(name) {
		if _, ok := g.configs[part]; ok {
			res = append(res, part)
			continue
		}
		if tags, ok := g.groups[part]; ok {
			res = append(res, tags...)
			continue
		}
		res = append(res, part)
	}
	return res
}

// expandChildren flattens a children table to concrete tag constraints.
// When expansion reaches the same tag twice, the later entry wins, sorted
// key order deciding "later" deterministically.
func (g *Grammar) expandChildren(children map[string]card.Range) map[string]card.Range {
	if children == nil {
		return nil
	}
	res := map[string]card.Range{}
	for _, name := range slices.Sorted(maps.Keys(children)) {
		rng := children[name]
		for _, tag := range g.ExpandName(name) {
			res[tag] = rng
		}
	}
	return res
}

func splitTags(tags string) []string {
	var res []string
	for _, t := range strings.Split(tags, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			res = append(res, t)
		}
	}
	return res
}

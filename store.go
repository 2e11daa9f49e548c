package treestore

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/softwell/genro-treestore/go-treestore/debug"
)

// Store is an ordered map of label to *Node. Lookup by label is O(1) via the
// node map; iteration follows an explicit order sequence. Both structures
// always agree in membership.
type Store struct {
	nodes  map[string]*Node
	order  []*Node
	parent *Node
}

// New makes an empty root Store.
func New() *Store {
	return &Store{nodes: map[string]*Node{}}
}

// FromMap builds a Store from a nested map. Keys are inserted in sorted
// order. Nested maps become branches; any other value becomes a leaf.
func FromMap(m map[string]any) *Store {
	s := New()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		v := m[k]
		if sub, ok := v.(map[string]any); ok {
			node := NewNode(k, nil, FromMap(sub), "")
			s.insertNode(node, "")
			continue
		}
		s.insertNode(NewNode(k, nil, v, ""), "")
	}
	return s
}

// FromItems builds a Store from (label, value, attrs) tuples in order. A
// repeated label keeps the last item, at the last position.
func FromItems(items []Item) *Store {
	s := New()
	for _, it := range items {
		if _, ok := s.nodes[it.Label]; ok {
			s.removeNode(it.Label)
		}
		s.insertNode(NewNode(it.Label, it.Attrs, it.Value, it.Tag), "")
	}
	return s
}

// Item is a flat (label, value) projection of a node.
type Item struct {
	Label string
	Value any
	Tag   string
	Attrs map[string]any
}

// Len returns the number of direct children.
func (s *Store) Len() int { return len(s.order) }

// Parent returns the Node owning this Store as its value, nil at the root.
func (s *Store) Parent() *Node { return s.parent }

// Root returns the root Store of the hierarchy.
func (s *Store) Root() *Store {
	if s.parent == nil || s.parent.parent == nil {
		return s
	}
	return s.parent.parent.Root()
}

// Depth returns this store's distance from the root, root being 0.
func (s *Store) Depth() int {
	if s.parent == nil || s.parent.parent == nil {
		return 0
	}
	return s.parent.parent.Depth() + 1
}

// Has reports whether a label or dotted path resolves to a node.
func (s *Store) Has(path string) bool {
	_, err := s.GetNode(path)
	return err == nil
}

// Node returns the direct child with the given label, nil when absent.
func (s *Store) Node(label string) *Node { return s.nodes[label] }

// GetNode resolves a path (labels and #N positions) to a node.
func (s *Store) GetNode(path string) (*Node, error) {
	cur, last, err := s.traverse(path, false)
	if err != nil {
		return nil, err
	}
	return cur.childNode(last)
}

// Get resolves a path to the node's value, or to an attribute when the path
// carries a ?attr suffix. A missing attribute on an existing node yields
// ErrNotFound.
func (s *Store) Get(path string) (any, error) {
	p, attr, hasAttr := splitAttrPath(path)
	node, err := s.GetNode(p)
	if err != nil {
		return nil, err
	}
	if hasAttr {
		v, ok := node.Attr(attr)
		if !ok {
			return nil, fmt.Errorf("%w: attribute %q on %q", ErrNotFound, attr, p)
		}
		return v, nil
	}
	return node.Value(), nil
}

// GetDefault is Get with a fallback for any resolution failure.
func (s *Store) GetDefault(path string, def any) any {
	v, err := s.Get(path)
	if err != nil {
		return def
	}
	return v
}

// GetAttr returns the named attribute of the node at path.
func (s *Store) GetAttr(path, name string) (any, error) {
	node, err := s.GetNode(path)
	if err != nil {
		return nil, err
	}
	v, ok := node.Attr(name)
	if !ok {
		return nil, fmt.Errorf("%w: attribute %q on %q", ErrNotFound, name, path)
	}
	return v, nil
}

// SetAttr merges attrs into the node at path. Attribute writes never
// autocreate: the node must already exist.
func (s *Store) SetAttr(path string, attrs map[string]any) error {
	node, err := s.GetNode(path)
	if err != nil {
		return err
	}
	node.SetAttrs(attrs)
	return nil
}

type setOpts struct {
	attrs    map[string]any
	tag      string
	position string
}

// SetOption configures Set.
type SetOption func(*setOpts)

// WithAttrs merges attrs onto the target node.
func WithAttrs(attrs map[string]any) SetOption {
	return func(o *setOpts) {
		if o.attrs == nil {
			o.attrs = map[string]any{}
		}
		maps.Copy(o.attrs, attrs)
	}
}

// WithAttr sets one attribute on the target node.
func WithAttr(name string, value any) SetOption {
	return func(o *setOpts) {
		if o.attrs == nil {
			o.attrs = map[string]any{}
		}
		o.attrs[name] = value
	}
}

// WithTag tags the created node.
func WithTag(tag string) SetOption {
	return func(o *setOpts) { o.tag = tag }
}

// AtPosition applies an insertion position directive (see path.go) when the
// final segment creates a new node.
func AtPosition(position string) SetOption {
	return func(o *setOpts) { o.position = position }
}

// Set writes value at path, autocreating missing intermediate branches.
//
// On an existing node, attributes are merged (new keys overwrite) and the
// value is replaced only when a non-nil value was supplied. A nil value on a
// missing label creates an empty branch.
//
// The returned store enables chaining: the parent container when the final
// write made a leaf (sibling chaining), or the child container when it made
// or addressed a branch (nested chaining).
//
// A path with a ?attr suffix assigns that single attribute instead; the
// target node must already exist.
func (s *Store) Set(path string, value any, opts ...SetOption) (*Store, error) {
	o := &setOpts{}
	for _, opt := range opts {
		opt(o)
	}

	p, attr, hasAttr := splitAttrPath(path)
	if hasAttr {
		node, err := s.GetNode(p)
		if err != nil {
			return nil, err
		}
		node.SetAttr(attr, value)
		return node.parent, nil
	}

	cur, last, err := s.traverse(p, true)
	if err != nil {
		return nil, err
	}

	if idx, ok := parseSegment(last); ok {
		// Positional final segment updates in place; it cannot create.
		node, err := cur.nodeAt(idx)
		if err != nil {
			return nil, err
		}
		return cur.updateNode(node, value, o)
	}

	if node, ok := cur.nodes[last]; ok {
		return cur.updateNode(node, value, o)
	}

	if debug.Path() {
		debug.Logf("set %q creates %q", path, last)
	}
	if value == nil {
		sub := New()
		node := NewNode(last, o.attrs, sub, o.tag)
		cur.insertNode(node, o.position)
		return sub, nil
	}
	node := NewNode(last, o.attrs, value, o.tag)
	cur.insertNode(node, o.position)
	if sub := node.Branch(); sub != nil {
		return sub, nil
	}
	return cur, nil
}

// Insert writes a direct child under the given literal label, with no path
// parsing: the label may contain '.', '?' or '#'. An existing node with that
// label keeps its position; its attributes are merged, the tag replaced when
// non-empty, and the value replaced as given. Unlike Set, a nil value makes
// a nil-valued leaf.
func (s *Store) Insert(label string, value any, opts ...SetOption) *Node {
	o := &setOpts{}
	for _, opt := range opts {
		opt(o)
	}
	if node, ok := s.nodes[label]; ok {
		if o.attrs != nil {
			node.SetAttrs(o.attrs)
		}
		if o.tag != "" {
			node.tag = o.tag
		}
		node.adopt(value)
		return node
	}
	node := NewNode(label, o.attrs, value, o.tag)
	s.insertNode(node, o.position)
	return node
}

func (s *Store) updateNode(node *Node, value any, o *setOpts) (*Store, error) {
	if o.attrs != nil {
		node.SetAttrs(o.attrs)
	}
	if o.tag != "" {
		node.tag = o.tag
	}
	if value != nil {
		node.adopt(value)
	}
	if sub := node.Branch(); sub != nil {
		return sub, nil
	}
	return s, nil
}

// Delete removes the node at path and returns it. No autocreate.
func (s *Store) Delete(path string) (*Node, error) {
	cur, last, err := s.traverse(path, false)
	if err != nil {
		return nil, err
	}
	if idx, ok := parseSegment(last); ok {
		node, err := cur.nodeAt(idx)
		if err != nil {
			return nil, err
		}
		return cur.removeNode(node.label)
	}
	return cur.removeNode(last)
}

// Pop removes the node at path and returns its value, def when absent.
func (s *Store) Pop(path string, def any) any {
	node, err := s.Delete(path)
	if err != nil {
		return def
	}
	return node.Value()
}

// Clear removes all direct children.
func (s *Store) Clear() {
	s.nodes = map[string]*Node{}
	s.order = s.order[:0]
}

// Keys returns direct-child labels in order.
func (s *Store) Keys() []string {
	res := make([]string, len(s.order))
	for i, n := range s.order {
		res[i] = n.label
	}
	return res
}

// Values returns direct-child values in order.
func (s *Store) Values() []any {
	res := make([]any, len(s.order))
	for i, n := range s.order {
		res[i] = n.value
	}
	return res
}

// Items returns flat projections of direct children in order.
func (s *Store) Items() []Item {
	res := make([]Item, len(s.order))
	for i, n := range s.order {
		res[i] = Item{Label: n.label, Value: n.value, Tag: n.tag, Attrs: n.attr}
	}
	return res
}

// Nodes returns direct children in order.
func (s *Store) Nodes() []*Node {
	return slices.Clone(s.order)
}

// Index returns the position of the labeled direct child.
func (s *Store) Index(label string) (int, error) {
	node, ok := s.nodes[label]
	if !ok {
		return 0, fmt.Errorf("%w: label %q", ErrNotFound, label)
	}
	return node.Index(), nil
}

// At returns the direct child at a position, negative counting from the end.
func (s *Store) At(index int) (*Node, error) {
	return s.nodeAt(index)
}

// ByTag returns all direct children with the given tag, in order.
func (s *Store) ByTag(tag string) []*Node {
	var res []*Node
	for _, n := range s.order {
		if n.tag == tag {
			res = append(res, n)
		}
	}
	return res
}

// Walk yields (path, node) over the whole subtree, depth-first pre-order.
func (s *Store) Walk() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		s.walk("", yield)
	}
}

func (s *Store) walk(prefix string, yield func(string, *Node) bool) bool {
	for _, n := range s.order {
		path := n.label
		if prefix != "" {
			path = prefix + "." + n.label
		}
		if !yield(path, n) {
			return false
		}
		if sub := n.Branch(); sub != nil {
			if !sub.walk(path, yield) {
				return false
			}
		}
	}
	return true
}

// Visit drives f over the whole subtree in the same order as Walk, stopping
// at the first error.
func (s *Store) Visit(f func(path string, n *Node) error) error {
	var err error
	for path, n := range s.Walk() {
		if err = f(path, n); err != nil {
			return err
		}
	}
	return nil
}

// Relabel renames a direct child in place, keeping its position in the
// order sequence.
func (s *Store) Relabel(node *Node, newLabel string) error {
	if node.parent != s {
		return fmt.Errorf("%w: node %q is not a direct child", ErrNotFound, node.label)
	}
	if other, ok := s.nodes[newLabel]; ok && other != node {
		return fmt.Errorf("label %q already in use", newLabel)
	}
	s.relabel(node, newLabel)
	return nil
}

// Clone deep-copies the store and all nodes below it.
func (s *Store) Clone() *Store {
	res := New()
	for _, n := range s.order {
		res.insertNode(n.Clone(), "")
	}
	return res
}

func (s *Store) String() string {
	return fmt.Sprintf("Store(%v)", s.Keys())
}

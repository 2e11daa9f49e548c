package treestore

import (
	"fmt"
	"maps"
)

// Node is a single entry in a Store. It owns either a scalar value (leaf) or
// a nested *Store (branch); never both. The parent pointer is a non-owning
// back-reference to the Store that holds this node.
type Node struct {
	label  string
	tag    string
	attr   map[string]any
	value  any
	parent *Store
}

// NewNode makes a detached node. It is attached to a Store by Store
// operations; most callers use Store.Set or the builder package instead.
func NewNode(label string, attr map[string]any, value any, tag string) *Node {
	n := &Node{
		label: label,
		tag:   tag,
		attr:  map[string]any{},
		value: nil,
	}
	maps.Copy(n.attr, attr)
	n.adopt(value)
	return n
}

func (n *Node) adopt(value any) {
	if sub, ok := value.(*Store); ok && sub != nil {
		sub.parent = n
	}
	n.value = value
}

// Label returns the node's key within its parent Store.
func (n *Node) Label() string { return n.label }

// Tag returns the node's type discriminator, "" when untagged.
func (n *Node) Tag() string { return n.tag }

// SetTag sets the node's type discriminator.
func (n *Node) SetTag(tag string) { n.tag = tag }

// IsBranch reports whether the node's value is a nested Store.
func (n *Node) IsBranch() bool {
	_, ok := n.value.(*Store)
	return ok
}

// IsLeaf reports whether the node holds a scalar value.
func (n *Node) IsLeaf() bool { return !n.IsBranch() }

// Branch returns the nested Store, or nil for a leaf.
func (n *Node) Branch() *Store {
	sub, _ := n.value.(*Store)
	return sub
}

// Value returns the node's value: a scalar for leaves, a *Store for branches.
func (n *Node) Value() any { return n.value }

// SetValue replaces the node's value. Assigning a *Store turns the node into
// a branch and adopts the store.
func (n *Node) SetValue(value any) { n.adopt(value) }

// Attr returns the named attribute and whether it is present.
func (n *Node) Attr(name string) (any, bool) {
	v, ok := n.attr[name]
	return v, ok
}

// AttrDefault returns the named attribute or def when absent.
func (n *Node) AttrDefault(name string, def any) any {
	if v, ok := n.attr[name]; ok {
		return v
	}
	return def
}

// Attrs returns the node's live attribute map.
func (n *Node) Attrs() map[string]any { return n.attr }

// SetAttr sets one attribute.
func (n *Node) SetAttr(name string, value any) {
	n.attr[name] = value
}

// SetAttrs merges attrs into the node's attributes, overwriting on conflict.
func (n *Node) SetAttrs(attrs map[string]any) {
	maps.Copy(n.attr, attrs)
}

// Parent returns the Store holding this node, nil when detached.
func (n *Node) Parent() *Store { return n.parent }

// Root returns the root Store of the hierarchy this node belongs to.
func (n *Node) Root() *Store {
	if n.parent == nil {
		return nil
	}
	return n.parent.Root()
}

// Index returns the node's position within its parent, -1 when detached.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, nn := range n.parent.order {
		if nn == n {
			return i
		}
	}
	return -1
}

// Path returns the dotted path of this node from the root of its hierarchy.
func (n *Node) Path() string {
	if n.parent == nil || n.parent.parent == nil {
		return n.label
	}
	return n.parent.parent.Path() + "." + n.label
}

func (n *Node) String() string {
	if sub := n.Branch(); sub != nil {
		if n.tag != "" {
			return fmt.Sprintf("Node(%q, tag=%q, Store(%d))", n.label, n.tag, sub.Len())
		}
		return fmt.Sprintf("Node(%q, Store(%d))", n.label, sub.Len())
	}
	if n.tag != "" {
		return fmt.Sprintf("Node(%q, tag=%q, value=%v)", n.label, n.tag, n.value)
	}
	return fmt.Sprintf("Node(%q, value=%v)", n.label, n.value)
}

// Clone deep-copies the node, detached from any parent.
func (n *Node) Clone() *Node {
	res := &Node{
		label: n.label,
		tag:   n.tag,
		attr:  map[string]any{},
	}
	maps.Copy(res.attr, n.attr)
	if sub := n.Branch(); sub != nil {
		res.adopt(sub.Clone())
	} else {
		res.value = n.value
	}
	return res
}

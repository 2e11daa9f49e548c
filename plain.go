package treestore

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/softwell/genro-treestore/go-treestore/plain"
)

// Reserved keys of the plain structure. Labels must not collide with them;
// AsPlain does not check.
const (
	plainValue = "_value"
	plainTag   = "_tag"
	plainAttr  = "_attr"
)

// AsPlain converts the tree to its plain structure: an ordered map per
// branch, child labels as keys. A leaf without tag or attributes becomes its
// value directly; otherwise it becomes a small map carrying "_value" plus
// "_tag" and "_attr". Branch tags and attributes use the same reserved keys.
//
// FromPlain inverts the conversion, preserving labels, tags, attributes,
// values, and order.
func (s *Store) AsPlain() *plain.Map {
	res := plain.NewMap()
	for _, n := range s.order {
		res.Set(n.label, nodePlain(n))
	}
	return res
}

func nodePlain(n *Node) any {
	if sub := n.Branch(); sub != nil {
		res := plain.NewMap()
		if n.tag != "" {
			res.Set(plainTag, n.tag)
		}
		if len(n.attr) > 0 {
			res.Set(plainAttr, attrPlain(n.attr))
		}
		for _, cn := range sub.order {
			res.Set(cn.label, nodePlain(cn))
		}
		return res
	}
	if n.tag == "" && len(n.attr) == 0 {
		return n.value
	}
	res := plain.NewMap()
	res.Set(plainValue, n.value)
	if n.tag != "" {
		res.Set(plainTag, n.tag)
	}
	if len(n.attr) > 0 {
		res.Set(plainAttr, attrPlain(n.attr))
	}
	return res
}

func attrPlain(attr map[string]any) *plain.Map {
	res := plain.NewMap()
	for _, k := range slices.Sorted(maps.Keys(attr)) {
		res.Set(k, attr[k])
	}
	return res
}

// FromPlain rebuilds a Store from a plain structure produced by AsPlain or
// by an external codec honoring the same shape.
func FromPlain(p *plain.Map) (*Store, error) {
	s := New()
	for _, e := range p.Entries() {
		node, err := plainNode(e.Key, e.Value)
		if err != nil {
			return nil, err
		}
		s.insertNode(node, "")
	}
	return s, nil
}

func plainNode(label string, v any) (*Node, error) {
	pm, ok := v.(*plain.Map)
	if !ok {
		return NewNode(label, nil, v, ""), nil
	}

	tag := ""
	if tv, ok := pm.Get(plainTag); ok {
		ts, ok := tv.(string)
		if !ok {
			return nil, fmt.Errorf("plain %q: %s is %T, want string", label, plainTag, tv)
		}
		tag = ts
	}
	var attr map[string]any
	if av, ok := pm.Get(plainAttr); ok {
		am, ok := av.(*plain.Map)
		if !ok {
			return nil, fmt.Errorf("plain %q: %s is %T, want object", label, plainAttr, av)
		}
		attr = map[string]any{}
		for _, e := range am.Entries() {
			attr[e.Key] = e.Value
		}
	}

	if lv, ok := pm.Get(plainValue); ok {
		return NewNode(label, attr, lv, tag), nil
	}

	sub := New()
	for _, e := range pm.Entries() {
		if e.Key == plainTag || e.Key == plainAttr {
			continue
		}
		cn, err := plainNode(e.Key, e.Value)
		if err != nil {
			return nil, err
		}
		sub.insertNode(cn, "")
	}
	return NewNode(label, attr, sub, tag), nil
}

// MarshalJSON encodes the plain structure, key order following node order.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.AsPlain())
}

// FromJSON rebuilds a Store from a JSON document in the plain structure.
func FromJSON(data []byte) (*Store, error) {
	pm := plain.NewMap()
	if err := json.Unmarshal(data, pm); err != nil {
		return nil, err
	}
	return FromPlain(pm)
}

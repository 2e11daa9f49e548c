package treestore

import (
	"fmt"
	"iter"
	"strings"
)

// Digest extracts data from direct children using a comma-joined spec:
//
//	#k       labels
//	#v       values
//	#a       the whole attribute map
//	#a.name  one attribute
//
// A single spec yields the extracted values; multiple specs yield []any
// tuples, one per node, in order.
func (s *Store) Digest(what string) ([]any, error) {
	var res []any
	for v, err := range s.IterDigest(what) {
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// IterDigest is the iterator form of Digest.
func (s *Store) IterDigest(what string) iter.Seq2[any, error] {
	specs := strings.Split(what, ",")
	for i := range specs {
		specs[i] = strings.TrimSpace(specs[i])
	}
	return func(yield func(any, error) bool) {
		for _, n := range s.order {
			if len(specs) == 1 {
				v, err := digestOne(n, specs[0])
				if !yield(v, err) || err != nil {
					return
				}
				continue
			}
			tuple := make([]any, len(specs))
			for i, spec := range specs {
				v, err := digestOne(n, spec)
				if err != nil {
					yield(nil, err)
					return
				}
				tuple[i] = v
			}
			if !yield(tuple, nil) {
				return
			}
		}
	}
}

func digestOne(n *Node, spec string) (any, error) {
	switch {
	case spec == "#k":
		return n.label, nil
	case spec == "#v":
		return n.value, nil
	case spec == "#a":
		return n.attr, nil
	case strings.HasPrefix(spec, "#a."):
		return n.AttrDefault(spec[3:], nil), nil
	default:
		return nil, fmt.Errorf("unknown digest specifier %q", spec)
	}
}

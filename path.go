package treestore

import (
	"fmt"
	"strconv"
	"strings"
)

// splitAttrPath splits "a.b?color" into ("a.b", "color", true). Only the
// last '?' counts, so attribute names may not contain '?'.
func splitAttrPath(path string) (string, string, bool) {
	i := strings.LastIndexByte(path, '?')
	if i < 0 {
		return path, "", false
	}
	return path[:i], path[i+1:], true
}

// parseSegment detects positional #N syntax. Segments with a '#' prefix that
// are not followed by an integer are treated as plain labels.
func parseSegment(seg string) (int, bool) {
	if !strings.HasPrefix(seg, "#") {
		return 0, false
	}
	idx, err := strconv.Atoi(seg[1:])
	if err != nil {
		return 0, false
	}
	return idx, true
}

// nodeAt returns the direct child at a positional index, negative counting
// from the end.
func (s *Store) nodeAt(index int) (*Node, error) {
	i := index
	if i < 0 {
		i += len(s.order)
	}
	if i < 0 || i >= len(s.order) {
		return nil, fmt.Errorf("%w: position #%d out of range (len %d)", ErrNotFound, index, len(s.order))
	}
	return s.order[i], nil
}

// childNode resolves one segment against direct children.
func (s *Store) childNode(seg string) (*Node, error) {
	if idx, ok := parseSegment(seg); ok {
		return s.nodeAt(idx)
	}
	n, ok := s.nodes[seg]
	if !ok {
		return nil, fmt.Errorf("%w: label %q", ErrNotFound, seg)
	}
	return n, nil
}

// traverse walks all but the last segment of path and returns the store
// holding the final segment, plus the final segment itself.
//
// With autocreate, missing intermediate labels are created as empty branch
// nodes and a leaf met mid-path is converted to a branch, discarding its
// scalar value. Positional segments are never autocreated.
func (s *Store) traverse(path string, autocreate bool) (*Store, string, error) {
	if path == "" {
		return nil, "", fmt.Errorf("%w: empty path", ErrNotFound)
	}
	parts := strings.Split(path, ".")
	cur := s
	for i, part := range parts[:len(parts)-1] {
		var node *Node
		if idx, ok := parseSegment(part); ok {
			var err error
			node, err = cur.nodeAt(idx)
			if err != nil {
				return nil, "", err
			}
		} else {
			var ok bool
			node, ok = cur.nodes[part]
			if !ok {
				if !autocreate {
					return nil, "", fmt.Errorf("%w: label %q at %q", ErrNotFound, part, strings.Join(parts[:i+1], "."))
				}
				node = NewNode(part, nil, New(), "")
				cur.insertNode(node, "")
			}
		}
		if !node.IsBranch() {
			if !autocreate {
				return nil, "", fmt.Errorf("%w: %q is a leaf, cannot reach %q",
					ErrNotABranch, part, strings.Join(parts[i+1:], "."))
			}
			node.adopt(New())
		}
		cur = node.Branch()
	}
	return cur, parts[len(parts)-1], nil
}

// Insertion position directives understood by Set and builder.Child:
//
//	append            add at the end (default)
//	prepend           add at the beginning
//	before:<label>    insert before the labeled sibling
//	after:<label>     insert after the labeled sibling
//	before:#N         insert before position N
//	after:#N          insert after position N
//	at:#N             insert at exact position N
//
// Negative indices count from the end. An unknown directive falls back to
// append; it is never an error.
const (
	PosAppend  = "append"
	PosPrepend = "prepend"
)

func (s *Store) insertIndex(position string) int {
	n := len(s.order)
	clamp := func(i int) int {
		if i < 0 {
			i += n
		}
		if i < 0 {
			return 0
		}
		if i > n {
			return n
		}
		return i
	}
	switch {
	case position == "" || position == PosAppend:
		return n
	case position == PosPrepend:
		return 0
	case strings.HasPrefix(position, "before:"), strings.HasPrefix(position, "after:"):
		dir, ref, _ := strings.Cut(position, ":")
		after := dir == "after"
		var i int
		if idx, ok := parseSegment(ref); ok {
			if idx < 0 {
				idx += n
			}
			i = idx
		} else {
			node, ok := s.nodes[ref]
			if !ok {
				return n
			}
			i = node.Index()
		}
		if after {
			i++
		}
		return clamp(i)
	case strings.HasPrefix(position, "at:"):
		ref := strings.TrimPrefix(position, "at:")
		if idx, ok := parseSegment(ref); ok {
			return clamp(idx)
		}
		return n
	default:
		return n
	}
}

// insertNode adds node to both the label map and the order sequence.
func (s *Store) insertNode(node *Node, position string) {
	node.parent = s
	s.nodes[node.label] = node
	i := s.insertIndex(position)
	if i >= len(s.order) {
		s.order = append(s.order, node)
		return
	}
	s.order = append(s.order[:i], append([]*Node{node}, s.order[i:]...)...)
}

// removeNode drops a direct child from both the map and the order sequence.
func (s *Store) removeNode(label string) (*Node, error) {
	node, ok := s.nodes[label]
	if !ok {
		return nil, fmt.Errorf("%w: label %q", ErrNotFound, label)
	}
	delete(s.nodes, label)
	for i, nn := range s.order {
		if nn == node {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	node.parent = nil
	return node, nil
}

// relabel renames a direct child in place, keeping its position.
func (s *Store) relabel(node *Node, newLabel string) {
	delete(s.nodes, node.label)
	node.label = newLabel
	s.nodes[newLabel] = node
}

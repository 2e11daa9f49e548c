// Package query selects treestore nodes with compiled expressions.
//
// An expression sees one node at a time through the Env fields:
//
//	q, _ := query.Compile(`tag == "li" && attr["done"] == true`)
//	nodes, _ := q.Select(store)
//
// Matching follows walk order (depth-first pre-order).
package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/softwell/genro-treestore/go-treestore"
)

// Env is the expression environment for one node.
type Env struct {
	Path     string         `expr:"path"`
	Label    string         `expr:"label"`
	Tag      string         `expr:"tag"`
	Value    any            `expr:"value"`
	Attr     map[string]any `expr:"attr"`
	Depth    int            `expr:"depth"`
	IsBranch bool           `expr:"isBranch"`
}

// Query is a compiled node predicate.
type Query struct {
	src string
	prg *vm.Program
}

// Compile builds a Query from an expression source. The expression must
// evaluate to a boolean.
func Compile(src string) (*Query, error) {
	prg, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", src, err)
	}
	return &Query{src: src, prg: prg}, nil
}

// MustCompile is Compile panicking on error.
func MustCompile(src string) *Query {
	q, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return q
}

func (q *Query) String() string { return q.src }

// Match evaluates the predicate for one node at the given path.
func (q *Query) Match(path string, n *treestore.Node) (bool, error) {
	env := Env{
		Path:     path,
		Label:    n.Label(),
		Tag:      n.Tag(),
		Attr:     n.Attrs(),
		Depth:    len(splitDots(path)) - 1,
		IsBranch: n.IsBranch(),
	}
	if n.IsLeaf() {
		env.Value = n.Value()
	}
	res, err := expr.Run(q.prg, env)
	if err != nil {
		return false, fmt.Errorf("query %q at %q: %w", q.src, path, err)
	}
	return res.(bool), nil
}

// Select returns all nodes of the tree matching the predicate, in walk
// order.
func (q *Query) Select(s *treestore.Store) ([]*treestore.Node, error) {
	var res []*treestore.Node
	err := s.Visit(func(path string, n *treestore.Node) error {
		ok, err := q.Match(path, n)
		if err != nil {
			return err
		}
		if ok {
			res = append(res, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SelectPaths is Select returning the node paths instead.
func (q *Query) SelectPaths(s *treestore.Store) ([]string, error) {
	var res []string
	err := s.Visit(func(path string, n *treestore.Node) error {
		ok, err := q.Match(path, n)
		if err != nil {
			return err
		}
		if ok {
			res = append(res, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func splitDots(path string) []string {
	if path == "" {
		return nil
	}
	var res []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			res = append(res, path[start:i])
			start = i + 1
		}
	}
	return append(res, path[start:])
}

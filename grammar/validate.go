package grammar

import (
	"errors"
	"maps"
	"slices"

	"github.com/softwell/genro-treestore/go-treestore"
	"github.com/softwell/genro-treestore/go-treestore/card"
	"github.com/softwell/genro-treestore/go-treestore/debug"
)

// Validate walks the tree depth-first in pre-order and checks every tagged
// node against the grammar: parent membership, children table membership,
// and per-tag cardinality after all children of a container were seen.
// Untagged nodes are outside the grammar and are skipped, subtree included.
//
// The contract is collect-all: Validate never stops at the first violation.
// It returns nil on a valid tree, otherwise all violations joined into one
// error; Violations recovers the typed list. Construction never validates,
// so re-validate after mutating.
func (g *Grammar) Validate(root *treestore.Store) error {
	if g == nil {
		return ErrNoGrammar
	}
	v := &validator{g: g}
	v.container(root, "", "")
	if len(v.violations) == 0 {
		return nil
	}
	errs := make([]error, len(v.violations))
	for i, viol := range v.violations {
		errs[i] = viol
	}
	return errors.Join(errs...)
}

type validator struct {
	g          *Grammar
	violations []*Violation
}

func (v *validator) report(viol *Violation) {
	if debug.Validate() {
		debug.Logf("violation: %v", viol)
	}
	v.violations = append(v.violations, viol)
}

// container checks one store whose owning node carries parentTag ("" at the
// root) and recurses into tagged branches.
func (v *validator) container(s *treestore.Store, parentTag, path string) {
	var expanded map[string]card.Range
	var allowed []string
	if parentTag != "" {
		if cfg := v.g.Config(parentTag); cfg != nil {
			expanded = v.g.expandChildren(cfg.Children())
			allowed = slices.Sorted(maps.Keys(expanded))
		}
	}

	counts := map[string]int{}
	for _, node := range s.Nodes() {
		tag := node.Tag()
		if tag == "" {
			continue
		}
		childPath := node.Label()
		if path != "" {
			childPath = path + "." + node.Label()
		}

		if cfg := v.g.Config(tag); cfg.HasParentRule() && parentTag != "" && !cfg.AllowsParent(parentTag) {
			v.report(&Violation{
				Path:      path,
				ParentTag: parentTag,
				Tag:       tag,
				err:       ErrInvalidParent,
			})
		}

		if expanded != nil {
			if _, ok := expanded[tag]; !ok {
				v.report(&Violation{
					Path:      path,
					ParentTag: parentTag,
					Tag:       tag,
					Allowed:   allowed,
					err:       ErrInvalidChild,
				})
			}
		}

		counts[tag]++

		if sub := node.Branch(); sub != nil {
			v.container(sub, tag, childPath)
		}
	}

	for _, tag := range allowed {
		want := expanded[tag]
		count := counts[tag]
		if count < want.Min {
			v.report(&Violation{
				Path:      path,
				ParentTag: parentTag,
				Tag:       tag,
				Count:     count,
				Want:      want,
				err:       ErrMissingChild,
			})
		}
		if want.Bounded() && count > want.Max {
			v.report(&Violation{
				Path:      path,
				ParentTag: parentTag,
				Tag:       tag,
				Count:     count,
				Want:      want,
				err:       ErrTooManyChildren,
			})
		}
	}
}

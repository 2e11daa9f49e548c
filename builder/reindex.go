package builder

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/softwell/genro-treestore/go-treestore"
	"github.com/softwell/genro-treestore/go-treestore/debug"
)

// autoNumber reports whether label matches the generated "{tag}_{n}"
// pattern, returning n. Explicit labels that happen to match count as
// generated.
func autoNumber(label, tag string) (int, bool) {
	rest, ok := strings.CutPrefix(label, tag+"_")
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 || rest != strconv.Itoa(n) {
		return 0, false
	}
	return n, true
}

// Reindex renumbers auto-generated labels to remove gaps left by
// deletions, preserving relative order within each tag group. Explicit
// labels are never touched; a slot whose label is already held by a node
// outside the group is skipped over. The pass recurses into every branch
// and resets each tag counter past the renumbered range, so Reindex twice
// in a row is a no-op.
func (b *Builder) Reindex() {
	type numbered struct {
		node *treestore.Node
		n    int
	}
	byTag := map[string][]numbered{}
	for _, node := range b.store.Nodes() {
		tag := node.Tag()
		if tag == "" {
			continue
		}
		if n, ok := autoNumber(node.Label(), tag); ok {
			byTag[tag] = append(byTag[tag], numbered{node: node, n: n})
		}
	}

	for tag, group := range byTag {
		slices.SortStableFunc(group, func(a, b numbered) int { return a.n - b.n })
		next := 0
		for _, m := range group {
			var newLabel string
			for {
				newLabel = fmt.Sprintf("%s_%d", tag, next)
				next++
				other := b.store.Node(newLabel)
				if other == nil || other == m.node {
					break
				}
				// Slot held by a node outside the group, e.g. an untagged
				// node whose explicit label matches the pattern. Skip it.
			}
			if m.node.Label() != newLabel {
				if debug.Reindex() {
					debug.Logf("reindex %q -> %q", m.node.Label(), newLabel)
				}
				if err := b.store.Relabel(m.node, newLabel); err != nil {
					panic(err)
				}
			}
		}
		b.counters[tag] = next
	}

	for _, node := range b.store.Nodes() {
		if sub := node.Branch(); sub != nil {
			b.shared.at(sub).Reindex()
		}
	}
}

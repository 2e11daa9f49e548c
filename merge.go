package treestore

import "github.com/softwell/genro-treestore/go-treestore/debug"

type mergeOpts struct {
	ignoreNil bool
}

// MergeOption configures Merge.
type MergeOption func(*mergeOpts)

// IgnoreNil skips nil values in the source: an existing value is never
// replaced by nil.
func IgnoreNil() MergeOption {
	return func(o *mergeOpts) { o.ignoreNil = true }
}

// Merge deep-merges other into s. For each entry of other, in order:
//
//   - present in both as branches: merge recursively;
//   - present otherwise: attributes are unioned (other's win on conflict)
//     and the value is replaced, unless IgnoreNil and other's value is nil;
//   - absent: the entry is deep-copied in.
func (s *Store) Merge(other *Store, opts ...MergeOption) {
	o := &mergeOpts{}
	for _, opt := range opts {
		opt(o)
	}
	s.merge(other, o)
}

// MergeMap is Merge with a nested-map source, keys taken in sorted order.
func (s *Store) MergeMap(m map[string]any, opts ...MergeOption) {
	s.Merge(FromMap(m), opts...)
}

func (s *Store) merge(other *Store, o *mergeOpts) {
	for _, on := range other.order {
		cur, ok := s.nodes[on.label]
		if !ok {
			if debug.Merge() {
				debug.Logf("merge copies %q", on.label)
			}
			s.insertNode(on.Clone(), "")
			continue
		}
		cur.SetAttrs(on.attr)
		if on.tag != "" {
			cur.tag = on.tag
		}
		osub := on.Branch()
		if csub := cur.Branch(); csub != nil && osub != nil {
			csub.merge(osub, o)
			continue
		}
		if o.ignoreNil && on.value == nil {
			continue
		}
		if osub != nil {
			cur.adopt(osub.Clone())
			continue
		}
		cur.value = on.value
	}
}

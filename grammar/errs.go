package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/softwell/genro-treestore/go-treestore/card"
)

var (
	// ErrNoGrammar reports validation attempted without a grammar.
	ErrNoGrammar = errors.New("no grammar")

	// ErrInvalidChild reports a tag where the parent's rule forbids it.
	ErrInvalidChild = errors.New("invalid child")

	// ErrInvalidParent reports a tag under a parent not in its parent rule.
	ErrInvalidParent = errors.New("invalid parent")

	// ErrMissingChild reports a required child tag count not met.
	ErrMissingChild = errors.New("missing child")

	// ErrTooManyChildren reports a bounded child tag count exceeded.
	ErrTooManyChildren = errors.New("too many children")

	// ErrUnsatisfiable reports a grammar rule no finite tree can satisfy.
	ErrUnsatisfiable = errors.New("unsatisfiable grammar")
)

// Violation is one structural error found by Validate.
type Violation struct {
	// Path of the node owning the checked container, "" at the root.
	Path string
	// ParentTag is the tag providing the children table, "" at the root.
	ParentTag string
	// Tag is the offending child tag.
	Tag string
	// Count and Want describe cardinality violations.
	Count int
	Want  card.Range
	// Allowed lists the expanded children table for ErrInvalidChild.
	Allowed []string

	err error
}

func (v *Violation) Error() string {
	at := "at root"
	if v.Path != "" {
		at = "at " + v.Path
	}
	switch {
	case errors.Is(v.err, ErrInvalidChild):
		return fmt.Sprintf("%v: tag %q is not valid under %q %s (allowed: %s)",
			v.err, v.Tag, v.ParentTag, at, strings.Join(v.Allowed, ","))
	case errors.Is(v.err, ErrInvalidParent):
		return fmt.Sprintf("%v: tag %q cannot be a child of %q %s",
			v.err, v.Tag, v.ParentTag, at)
	case errors.Is(v.err, ErrMissingChild):
		return fmt.Sprintf("%v: %q requires at least %d %q children %s, found %d",
			v.err, v.ParentTag, v.Want.Min, v.Tag, at, v.Count)
	case errors.Is(v.err, ErrTooManyChildren):
		return fmt.Sprintf("%v: %q allows at most %d %q children %s, found %d",
			v.err, v.ParentTag, v.Want.Max, v.Tag, at, v.Count)
	default:
		return fmt.Sprintf("%v: tag %q under %q %s", v.err, v.Tag, v.ParentTag, at)
	}
}

func (v *Violation) Unwrap() error { return v.err }

// Violations extracts the typed violations from an error returned by
// Validate.
func Violations(err error) []*Violation {
	var res []*Violation
	collect(err, &res)
	return res
}

func collect(err error, dst *[]*Violation) {
	if err == nil {
		return
	}
	var v *Violation
	if errors.As(err, &v) && err == error(v) {
		*dst = append(*dst, v)
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			collect(e, dst)
		}
		return
	}
	if errors.As(err, &v) {
		*dst = append(*dst, v)
	}
}

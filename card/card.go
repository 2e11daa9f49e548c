// Package card parses cardinality specifications into (min,max) ranges.
//
// Two notations exist. The symbolic notation is used for the values of a
// grammar children table:
//
//	*      zero or more
//	+      one or more
//	?      zero or one
//	3      exactly three
//	1-3    between one and three
//	1:3    same, colon form
//	2:     at least two
//	:4     at most four
//
// The bracket notation attaches a cardinality to a tag name:
//
//	li  li[1]  li[2:]  li[:3]  li[1:3]
//
// A bare tag means (0, unbounded). Malformed specs are configuration errors
// and surface at grammar definition time, never during tree construction or
// validation.
package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadSpec reports a malformed cardinality specification.
var ErrBadSpec = errors.New("bad cardinality spec")

// Unbounded marks a Range with no upper limit.
const Unbounded = -1

// Range is an inclusive (min,max) occurrence constraint. Max is Unbounded
// when no upper limit applies.
type Range struct {
	Min, Max int
}

// Any is the default constraint: zero or more.
var Any = Range{Min: 0, Max: Unbounded}

// Bounded reports whether the range has an upper limit.
func (r Range) Bounded() bool { return r.Max != Unbounded }

// Contains reports whether n satisfies the constraint.
func (r Range) Contains(n int) bool {
	return n >= r.Min && (!r.Bounded() || n <= r.Max)
}

func (r Range) String() string {
	switch {
	case r.Min == 0 && !r.Bounded():
		return "*"
	case r.Min == 1 && !r.Bounded():
		return "+"
	case r.Min == 0 && r.Max == 1:
		return "?"
	case r.Bounded() && r.Min == r.Max:
		return strconv.Itoa(r.Min)
	case !r.Bounded():
		return fmt.Sprintf("%d:", r.Min)
	default:
		return fmt.Sprintf("%d:%d", r.Min, r.Max)
	}
}

// Parse reads the symbolic notation.
func Parse(spec string) (Range, error) {
	spec = strings.TrimSpace(spec)
	switch spec {
	case "":
		return Range{}, fmt.Errorf("%w: empty", ErrBadSpec)
	case "*":
		return Any, nil
	case "+":
		return Range{Min: 1, Max: Unbounded}, nil
	case "?":
		return Range{Min: 0, Max: 1}, nil
	}
	sep := ":"
	if !strings.Contains(spec, ":") && strings.Contains(spec, "-") {
		sep = "-"
	}
	lo, hi, found := strings.Cut(spec, sep)
	if !found {
		n, err := parseBound(spec)
		if err != nil {
			return Range{}, err
		}
		return Range{Min: n, Max: n}, nil
	}
	r := Any
	if lo != "" {
		n, err := parseBound(lo)
		if err != nil {
			return Range{}, err
		}
		r.Min = n
	}
	if hi != "" {
		n, err := parseBound(hi)
		if err != nil {
			return Range{}, err
		}
		r.Max = n
	}
	if r.Bounded() && r.Max < r.Min {
		return Range{}, fmt.Errorf("%w: %q has max below min", ErrBadSpec, spec)
	}
	return r, nil
}

func parseBound(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bound %q", ErrBadSpec, v)
	}
	return n, nil
}

// ParseTagSpec reads the bracket notation, returning the tag name and its
// range. A bare tag yields Any.
func ParseTagSpec(spec string) (string, Range, error) {
	spec = strings.TrimSpace(spec)
	open := strings.IndexByte(spec, '[')
	if open < 0 {
		if spec == "" || strings.ContainsAny(spec, "]:") {
			return "", Range{}, fmt.Errorf("%w: tag spec %q", ErrBadSpec, spec)
		}
		return spec, Any, nil
	}
	if !strings.HasSuffix(spec, "]") {
		return "", Range{}, fmt.Errorf("%w: unbalanced brackets in %q", ErrBadSpec, spec)
	}
	tag := strings.TrimSpace(spec[:open])
	if tag == "" {
		return "", Range{}, fmt.Errorf("%w: missing tag in %q", ErrBadSpec, spec)
	}
	inner := spec[open+1 : len(spec)-1]
	if strings.Contains(inner, "-") {
		return "", Range{}, fmt.Errorf("%w: %q (bracket form takes n, n:, :m, n:m)", ErrBadSpec, spec)
	}
	r, err := Parse(inner)
	if err != nil {
		return "", Range{}, err
	}
	return tag, r, nil
}

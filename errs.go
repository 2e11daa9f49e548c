package treestore

import "errors"

var (
	// ErrNotFound reports a path segment, positional index, or attribute
	// that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotABranch reports path traversal into a leaf node with segments
	// remaining.
	ErrNotABranch = errors.New("not a branch")
)

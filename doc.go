// Package treestore implements a hierarchical, ordered, attributed tree
// container with path-based access and mutation.
//
// A Store is an ordered collection of Nodes keyed by label. Each Node carries
// a label (unique within its parent), an optional tag (a type discriminator
// shared by many nodes), an attribute map, and a value which is either a
// scalar (leaf) or a nested *Store (branch).
//
// # Paths
//
// Paths are dot-separated segments. A segment is a label or a positional
// index #N (#-N counts from the end). The final segment may carry a ?attr
// suffix to address an attribute instead of the node value:
//
//	store.Get("config.database.host")
//	store.Get("#0.#-1")
//	store.Get("config.debug?level")
//
// Set resolves paths with autocreate: missing intermediate labels become
// empty branch nodes, and a leaf met mid-path is converted to a branch (its
// scalar value is discarded). Attribute writes never autocreate.
//
// # Related Packages
//
//   - github.com/softwell/genro-treestore/go-treestore/builder - auto-labeling construction
//   - github.com/softwell/genro-treestore/go-treestore/grammar - structural validation
//   - github.com/softwell/genro-treestore/go-treestore/plain - ordered plain-structure codec
package treestore

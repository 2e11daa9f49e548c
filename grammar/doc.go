// Package grammar declares structural rules for tag-typed trees and
// validates assembled trees against them.
//
// A Grammar maps tags to a configuration: the allowed child tags with their
// cardinalities, the allowed parent tags, and an optional construction
// handler. Tags may be declared in comma-joined alias lists; named groups
// collect tags so that children tables can reference a whole family at once.
// Group names in a children table are expanded lazily at validation time,
// so groups may reference each other freely.
//
//	g := grammar.New()
//	g.MustGroup("inline", "span,a,em")
//	g.MustElement("ul,ol", grammar.Children(map[string]string{"li": "+"}))
//	g.MustElement("p", grammar.Children(map[string]string{"inline": "*"}))
//
// Validation is an explicit pass over a finished tree; construction through
// the builder package never checks structure. Validate collects every
// violation and returns them joined into a single error.
package grammar

// Package plain provides an order-preserving string-keyed map, the carrier
// for plain-structure conversions of treestore trees.
//
// Go's map type loses insertion order, which the treestore round-trip
// contract requires; Map keeps an explicit key sequence alongside the value
// map and preserves it through JSON encoding and decoding.
package plain

package treestore

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch"
)

// ApplyPatch applies an RFC 6902 JSON patch to the tree through its plain
// structure and rebuilds the store contents in place. Patch paths address
// the plain structure, so "/config/_attr/color" targets an attribute.
func ApplyPatch(s *Store, patch []byte) error {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(s.AsPlain())
	if err != nil {
		return err
	}
	patched, err := ops.Apply(doc)
	if err != nil {
		return err
	}
	res, err := FromJSON(patched)
	if err != nil {
		return err
	}
	s.Clear()
	for _, n := range res.order {
		n.parent = nil
		s.insertNode(n, "")
	}
	return nil
}

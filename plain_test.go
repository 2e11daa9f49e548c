package treestore

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sample() *Store {
	s := New()
	s.Set("title", "hello")
	s.Set("body", nil, WithTag("body"), WithAttr("lang", "en"))
	s.Set("body.p_0", "first", WithTag("p"))
	s.Set("body.p_1", "second", WithTag("p"), WithAttr("class", "x"))
	s.Set("trailer", nil)
	return s
}

func treeShape(s *Store) []any {
	var res []any
	for _, n := range s.Nodes() {
		entry := map[string]any{
			"label": n.Label(),
			"tag":   n.Tag(),
			"attrs": n.Attrs(),
		}
		if sub := n.Branch(); sub != nil {
			entry["children"] = treeShape(sub)
		} else {
			entry["value"] = n.Value()
		}
		res = append(res, entry)
	}
	return res
}

func TestPlainRoundTrip(t *testing.T) {
	s := sample()
	got, err := FromPlain(s.AsPlain())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(treeShape(s), treeShape(got)); diff != "" {
		t.Errorf("round trip changed the tree: (-want +got)\n%s", diff)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	// JSON numbers come back as int64/float64, so the fixture sticks to
	// those plus strings, bools and null.
	s := New()
	s.Set("i", int64(41))
	s.Set("f", 2.5)
	s.Set("s", "str", WithAttr("n", int64(7)))
	s.Set("b", true, WithTag("flag"))
	s.Set("deep.leaf", nil)

	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	got, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(treeShape(s), treeShape(got)); diff != "" {
		t.Errorf("round trip changed the tree: (-want +got)\n%s", diff)
	}
}

func TestJSONOrderPreserved(t *testing.T) {
	s := New()
	s.Set("z", int64(1))
	s.Set("a", int64(2))
	s.Set("m", int64(3))
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	got, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(s.Keys(), got.Keys()); diff != "" {
		t.Errorf("order not preserved: (-want +got)\n%s", diff)
	}
}

func TestPlainLeafWithMetadata(t *testing.T) {
	s := New()
	s.Set("x", "v", WithTag("t"), WithAttr("a", "b"))
	pm := s.AsPlain()
	data, err := pm.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"x":{"_value":"v","_tag":"t","_attr":{"a":"b"}}}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestPlainBareLeaf(t *testing.T) {
	s := New()
	s.Set("x", "v")
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"x":"v"}` {
		t.Errorf("got %s, want {\"x\":\"v\"}", data)
	}
}

package plain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Map is an ordered string→any map. Nested objects decoded from JSON are
// *Map values; arrays are []any; numbers are int64 when integral, float64
// otherwise.
type Map struct {
	keys []string
	vals map[string]any
}

// NewMap makes an empty Map.
func NewMap() *Map {
	return &Map{vals: map[string]any{}}
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string { return slices.Clone(m.keys) }

// Get returns the value for key and whether it is present.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Set inserts or replaces a value. A new key is appended to the order.
func (m *Map) Set(key string, value any) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = value
}

// Delete removes a key, keeping the relative order of the rest.
func (m *Map) Delete(key string) {
	if _, ok := m.vals[key]; !ok {
		return
	}
	delete(m.vals, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// Entry is one (key, value) pair.
type Entry struct {
	Key   string
	Value any
}

// Entries returns the pairs in insertion order.
func (m *Map) Entries() []Entry {
	res := make([]Entry, len(m.keys))
	for i, k := range m.keys {
		res[i] = Entry{Key: k, Value: m.vals[k]}
	}
	return res
}

// MarshalJSON writes the entries as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kd, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kd)
		buf.WriteByte(':')
		vd, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vd)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping its key order.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return err
	}
	om, ok := v.(*Map)
	if !ok {
		return fmt.Errorf("plain: expected object, got %T", v)
	}
	*m = *om
	return nil
}

// Decode reads an order-preserving value from JSON data.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return decodeValue(dec)
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFrom(dec, tok)
}

func decodeFrom(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			res := NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("plain: object key %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				res.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // closing brace
				return nil, err
			}
			return res, nil
		case '[':
			var res []any
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				res = append(res, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return res, nil
		default:
			return nil, fmt.Errorf("plain: unexpected delimiter %v", t)
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return t.Float64()
	default:
		return tok, nil
	}
}

package toolschema

import (
	"bytes"
	"encoding/json"
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// keyed is a string-keyed, insertion-ordered map shared by the schema artifacts.
// The zero value is an empty map. JSON output keeps insertion order and does not
// HTML-escape keys or values.
type keyed[V any] struct {
	m *orderedmap.OrderedMap[string, V]
}

func newOrderedMap[V any]() *orderedmap.OrderedMap[string, V] {
	return orderedmap.New[string, V]()
}

func (k *keyed[V]) init() {
	if k.m == nil {
		k.m = newOrderedMap[V]()
	}
}

// set inserts or replaces key. A replaced key keeps its original position.
func (k *keyed[V]) set(key string, v V) {
	k.init()
	k.m.Set(key, v)
}

// Len returns the number of entries.
func (k keyed[V]) Len() int {
	if k.m == nil {
		return 0
	}
	return k.m.Len()
}

// Get returns the entry stored under key.
func (k keyed[V]) Get(key string) (V, bool) {
	if k.m == nil {
		var zero V
		return zero, false
	}
	return k.m.Get(key)
}

// Keys returns the keys in insertion order.
func (k keyed[V]) Keys() []string {
	out := make([]string, 0, k.Len())
	for key := range k.All() {
		out = append(out, key)
	}
	return out
}

// All iterates entries in insertion order.
func (k keyed[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if k.m == nil {
			return
		}
		for pair := k.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// MarshalJSON writes the entries in insertion order. The map's own marshaller
// HTML-escapes keys and values, so entries are encoded here instead.
func (k keyed[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	encode := func(v any) error {
		if err := enc.Encode(v); err != nil {
			return err
		}
		buf.Truncate(buf.Len() - 1) // Encode appends '\n'
		return nil
	}
	buf.WriteByte('{')
	first := true
	for key, v := range k.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := encode(key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encode(v); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (k *keyed[V]) UnmarshalJSON(data []byte) error {
	k.m = newOrderedMap[V]()
	return k.m.UnmarshalJSON(data)
}

package value

import (
	"bytes"
)

type mapItem struct {
	Key   string
	Value interface{}
}

// Map is an insertion-ordered string-keyed map, the GraphQL "ordered map"
// value kind: object literals, variable values, and result data all use
// Map instead of a plain map[string]interface{} so that field order in a
// response always matches selection order, as spec.md's executor
// invariants require.
//
// Map supports two construction styles. NewMap plus Append builds a map
// incrementally, appending one key at a time. NewMapWithLength plus the
// indexed Set lets the executor pre-allocate one slot per field of a
// grouped field set and fill them in as resolver futures complete, which
// may be out of order when fields execute concurrently, without losing
// the field set's original order.
type Map struct {
	items []mapItem
	index map[string]int
}

// NewMap constructs an empty Map.
func NewMap() *Map {
	return &Map{index: map[string]int{}}
}

// NewMapWithLength constructs a Map with n pre-allocated, initially empty
// slots to be filled in with Set.
func NewMapWithLength(n int) *Map {
	return &Map{items: make([]mapItem, n), index: make(map[string]int, n)}
}

// Append adds a new key/value pair to the end of m, growing it by one
// entry. If key is already present, its value is overwritten in place
// rather than appearing twice.
func (m *Map) Append(key string, v interface{}) {
	if i, ok := m.index[key]; ok {
		m.items[i].Value = v
		return
	}
	m.index[key] = len(m.items)
	m.items = append(m.items, mapItem{Key: key, Value: v})
}

// Set fills slot i (previously allocated by NewMapWithLength) with key
// and v.
func (m *Map) Set(i int, key string, v interface{}) {
	m.items[i] = mapItem{Key: key, Value: v}
	m.index[key] = i
}

// Get returns the value associated with key and whether it was present.
func (m *Map) Get(key string) (interface{}, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.items[i].Value, true
}

// Len returns the number of entries in m.
func (m *Map) Len() int {
	return len(m.items)
}

// Keys returns m's keys in order.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.items))
	for i, item := range m.items {
		keys[i] = item.Key
	}
	return keys
}

// Items returns m's key/value pairs in order. The returned value aliases
// m's internal storage and must not be mutated.
func (m *Map) Items() []mapItem {
	return m.items
}

func (m *Map) MarshalJSON() ([]byte, error) {
	pairs := make([][]byte, len(m.items))
	for i, item := range m.items {
		keyJSON, err := json.Marshal(item.Key)
		if err != nil {
			return nil, err
		}
		valueJSON, err := json.Marshal(item.Value)
		if err != nil {
			return nil, err
		}
		pairs[i] = bytes.Join([][]byte{keyJSON, valueJSON}, []byte{':'})
	}
	return append(append([]byte{'{'}, bytes.Join(pairs, []byte{','})...), '}'), nil
}

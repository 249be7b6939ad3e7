package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_Encoding(t *testing.T) {
	m := NewMap()
	m.Append("foo", "bar")
	m.Append("foo2", "bar2")
	assert.Equal(t, 2, m.Len())

	buf, err := json.Marshal(m)
	assert.NoError(t, err)
	assert.Equal(t, `{"foo":"bar","foo2":"bar2"}`, string(buf))
}

func TestMap_AppendOverwritesInPlace(t *testing.T) {
	m := NewMap()
	m.Append("foo", "bar")
	m.Append("foo", "baz")
	assert.Equal(t, 1, m.Len())
	v, ok := m.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, "baz", v)
}

func TestMap_IndexedSet(t *testing.T) {
	m := NewMapWithLength(3)
	// fields may complete out of order, but the slots preserve the
	// original grouped field set order
	m.Set(2, "c", 3)
	m.Set(0, "a", 1)
	m.Set(1, "b", 2)

	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())

	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	buf, err := json.Marshal(m)
	assert.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(buf))
}

func TestMap_GetMissing(t *testing.T) {
	m := NewMap()
	_, ok := m.Get("nope")
	assert.False(t, ok)
}

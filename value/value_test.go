package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUndefined(t *testing.T) {
	assert.True(t, IsUndefined(Undefined))
	assert.False(t, IsUndefined(nil))
	assert.False(t, IsUndefined("undefined"))
}

func TestNumber_Kinds(t *testing.T) {
	i := NewInt(3)
	assert.Equal(t, Int, i.Kind)
	assert.Equal(t, float64(3), i.AsFloat64())

	f := NewFloat(3.5)
	assert.Equal(t, Float, f.Kind)
	assert.Equal(t, 3.5, f.AsFloat64())

	b := NewBoolean(true)
	assert.Equal(t, Boolean, b.Kind)
	assert.Equal(t, "Boolean", b.Kind.String())
}

func TestNumber_MarshalJSON(t *testing.T) {
	buf, err := json.Marshal(NewInt(7))
	assert.NoError(t, err)
	assert.Equal(t, "7", string(buf))

	buf, err = json.Marshal(NewFloat(7.5))
	assert.NoError(t, err)
	assert.Equal(t, "7.5", string(buf))

	buf, err = json.Marshal(NewBoolean(false))
	assert.NoError(t, err)
	assert.Equal(t, "false", string(buf))
}

func TestPath(t *testing.T) {
	p := Path{}.WithKey("widgets").WithIndex(2).WithKey("name")
	assert.Equal(t, Path{"widgets", 2, "name"}, p)
	assert.Equal(t, []interface{}{"widgets", 2, "name"}, p.Slice())
}

func TestPath_ImmutableAppend(t *testing.T) {
	base := Path{}.WithKey("a")
	p1 := base.WithKey("b")
	p2 := base.WithKey("c")
	assert.Equal(t, Path{"a", "b"}, p1)
	assert.Equal(t, Path{"a", "c"}, p2)
}

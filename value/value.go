// Package value implements the host-independent value model: an
// insertion-ordered Map, a Number that remembers the scalar kind it
// originated from, an explicit Undefined sentinel distinct from Go's nil,
// and Path for locating a value within a larger result or input.
package value

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// undefinedType is the concrete type behind Undefined. It exists so that
// Undefined can be compared with == and type-switched on, distinct from a
// nil interface{} (which means "explicit null", not "absent").
type undefinedType struct{}

// Undefined represents the absence of a value, as distinct from an
// explicit GraphQL null. Coercing a variable that wasn't provided and has
// no default yields Undefined; coercing one explicitly set to null yields
// a nil interface{}.
var Undefined interface{} = undefinedType{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v interface{}) bool {
	_, ok := v.(undefinedType)
	return ok
}

// NumberKind identifies which GraphQL scalar kind a Number was parsed
// from or is being coerced towards.
type NumberKind int

const (
	Int NumberKind = iota
	Float
	Boolean
)

func (k NumberKind) String() string {
	switch k {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Boolean:
		return "Boolean"
	default:
		return "Number"
	}
}

// Number is a tagged union over GraphQL's numeric/boolean scalar kinds. It
// exists because a bare interface{} loses the distinction between "this
// value is an Int" and "this value is a Float that happens to be whole",
// a distinction spec.md's variable and literal coercion rules depend on
// (e.g. an Int literal is coercible to Float, but a Float literal is never
// coercible to Int even when its fractional part is zero).
type Number struct {
	Kind    NumberKind
	Int64   int64
	Float64 float64
	Bool    bool
}

// NewInt wraps an int64 as an Int-kind Number.
func NewInt(i int64) Number { return Number{Kind: Int, Int64: i, Float64: float64(i)} }

// NewFloat wraps a float64 as a Float-kind Number.
func NewFloat(f float64) Number { return Number{Kind: Float, Float64: f, Int64: int64(f)} }

// NewBoolean wraps a bool as a Boolean-kind Number.
func NewBoolean(b bool) Number {
	n := Number{Kind: Boolean, Bool: b}
	if b {
		n.Int64, n.Float64 = 1, 1
	}
	return n
}

// AsFloat64 returns n's value widened to float64, valid for Int and Float
// kinds.
func (n Number) AsFloat64() float64 {
	if n.Kind == Float {
		return n.Float64
	}
	return float64(n.Int64)
}

func (n Number) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case Boolean:
		return json.Marshal(n.Bool)
	case Float:
		return json.Marshal(n.Float64)
	default:
		return json.Marshal(n.Int64)
	}
}

// Path is an ordered sequence of map keys (string) and list indices (int)
// locating a value within a larger document, used to annotate execution
// and coercion errors per spec.md's glossary definition of "response
// path".
type Path []interface{}

// WithKey returns a new Path with key appended.
func (p Path) WithKey(key string) Path {
	return append(append(Path{}, p...), key)
}

// WithIndex returns a new Path with index appended.
func (p Path) WithIndex(index int) Path {
	return append(append(Path{}, p...), index)
}

// Slice returns p as a plain []interface{}, suitable for JSON encoding in
// a GraphQL error's "path" field.
func (p Path) Slice() []interface{} {
	return append([]interface{}{}, p...)
}

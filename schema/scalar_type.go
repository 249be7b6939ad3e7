package schema

import (
	"fmt"

	"github.com/nilsbr/gqlcore/ast"
)

// ScalarType is a leaf type with its own coercion rules for each of the
// three value representations a scalar can appear in: an AST literal
// parsed straight from a document, a decoded variable value (e.g. from a
// request's JSON variables object), and a value returned from a resolver
// that needs to be put into a response. Each coercion func should return
// nil if coercion is impossible.
type ScalarType struct {
	Name        string
	Description string
	Directives  []*Directive

	LiteralCoercion       func(ast.Value) interface{}
	VariableValueCoercion func(interface{}) interface{}
	ResultCoercion        func(interface{}) interface{}
}

func (t *ScalarType) String() string {
	return t.Name
}

func (t *ScalarType) IsInputType() bool {
	return true
}

func (t *ScalarType) IsOutputType() bool {
	return true
}

func (t *ScalarType) IsSubTypeOf(other Type) bool {
	return t.IsSameType(other)
}

func (t *ScalarType) IsSameType(other Type) bool {
	return t == other
}

func (t *ScalarType) NamedType() string {
	return t.Name
}

// CoerceVariableValue coerces a decoded variable value via
// VariableValueCoercion, turning a nil result into an error.
func (t *ScalarType) CoerceVariableValue(v interface{}) (interface{}, error) {
	if coerced := t.VariableValueCoercion(v); coerced != nil {
		return coerced, nil
	}
	return nil, fmt.Errorf("cannot coerce to %v", t)
}

// CoerceResult coerces a resolver's return value for inclusion in a
// response via ResultCoercion, turning a nil result into an error.
func (t *ScalarType) CoerceResult(v interface{}) (interface{}, error) {
	if coerced := t.ResultCoercion(v); coerced != nil {
		return coerced, nil
	}
	return nil, fmt.Errorf("cannot coerce %v to %v", v, t)
}

// IsScalarType reports whether t is a *ScalarType.
func IsScalarType(t Type) bool {
	_, ok := t.(*ScalarType)
	return ok
}

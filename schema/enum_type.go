package schema

import (
	"fmt"

	"github.com/nilsbr/gqlcore/ast"
)

// EnumType is a scalar restricted to a fixed set of named values.
type EnumType struct {
	Name        string
	Description string
	Directives  []*Directive
	Values      map[string]*EnumValueDefinition
}

type EnumValueDefinition struct {
	Description       string
	Directives        []*Directive
	DeprecationReason string

	// Value is the internal representation a resolver works with. If
	// unset, the value's name (the map key in EnumType.Values) is used
	// as its own internal representation.
	Value interface{}
}

func (d *EnumValueDefinition) internalValue(name string) interface{} {
	if d.Value != nil {
		return d.Value
	}
	return name
}

func (t *EnumType) String() string {
	return t.Name
}

func (t *EnumType) IsInputType() bool {
	return true
}

func (t *EnumType) IsOutputType() bool {
	return true
}

func (t *EnumType) IsSubTypeOf(other Type) bool {
	return t.IsSameType(other)
}

func (t *EnumType) IsSameType(other Type) bool {
	return t == other
}

func (t *EnumType) NamedType() string {
	return t.Name
}

// CoerceVariableValue coerces a decoded variable value, which must be the
// string name of one of t's values, to that value's internal
// representation.
func (t *EnumType) CoerceVariableValue(v interface{}) (interface{}, error) {
	name, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("cannot coerce to %v", t)
	}
	def, ok := t.Values[name]
	if !ok {
		return nil, fmt.Errorf("%v is not a value of %v", name, t)
	}
	return def.internalValue(name), nil
}

// CoerceLiteral coerces an AST enum value literal, which must name one of
// t's values, to that value's internal representation.
func (t *EnumType) CoerceLiteral(v ast.Value) (interface{}, error) {
	enumValue, ok := v.(*ast.EnumValue)
	if !ok {
		return nil, fmt.Errorf("cannot coerce to %v", t)
	}
	def, ok := t.Values[enumValue.Value]
	if !ok {
		return nil, fmt.Errorf("%v is not a value of %v", enumValue.Value, t)
	}
	return def.internalValue(enumValue.Value), nil
}

// CoerceResult coerces a resolver's return value, an enum value's internal
// representation, back to its name for inclusion in a response.
func (t *EnumType) CoerceResult(v interface{}) (interface{}, error) {
	for name, def := range t.Values {
		if def.internalValue(name) == v {
			return name, nil
		}
	}
	return nil, fmt.Errorf("%v is not a value of %v", v, t)
}

func (d *EnumType) shallowValidate() error {
	if len(d.Values) == 0 {
		return fmt.Errorf("%v must have at least one field", d.Name)
	} else {
		for name := range d.Values {
			if !isName(name) || name == "true" || name == "false" || name == "null" {
				return fmt.Errorf("illegal field name: %v", name)
			}
		}
	}
	return nil
}

// IsEnumType reports whether t is an *EnumType.
func IsEnumType(t Type) bool {
	_, ok := t.(*EnumType)
	return ok
}

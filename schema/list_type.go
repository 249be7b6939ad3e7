package schema

import (
	"fmt"

	"github.com/nilsbr/gqlcore/ast"
)

// ListType is an ordered list of values of another type.
type ListType struct {
	Type Type
}

func NewListType(t Type) *ListType {
	return &ListType{
		Type: t,
	}
}

func (t *ListType) String() string {
	return "[" + t.Type.String() + "]"
}

func (t *ListType) IsInputType() bool {
	return t.Type.IsInputType()
}

func (t *ListType) IsOutputType() bool {
	return t.Type.IsOutputType()
}

func (t *ListType) IsSubTypeOf(other Type) bool {
	return t.IsSameType(other) || t.Type.IsSubTypeOf(other)
}

func (t *ListType) IsSameType(other Type) bool {
	if lt, ok := other.(*ListType); ok {
		return t.Type.IsSameType(lt.Type)
	}
	return false
}

func (t *ListType) Unwrap() Type {
	return t.Type
}

func (t *ListType) shallowValidate() error {
	return nil
}

// IsListType reports whether t is a *ListType.
func IsListType(t Type) bool {
	_, ok := t.(*ListType)
	return ok
}

// coerceVariableValue coerces a decoded variable value to t. A plain slice
// coerces element-wise. A non-slice value coerces to a single-element list
// only when allowItemToListCoercion is true, which holds at the top of a
// coercion call but is forced false for the elements of an explicit list,
// so a single scalar nested two lists deep cannot silently become a
// doubly-wrapped list by accident.
func (t *ListType) coerceVariableValue(value interface{}, allowItemToListCoercion bool) (interface{}, error) {
	if values, ok := value.([]interface{}); ok {
		result := make([]interface{}, len(values))
		for i, v := range values {
			coerced, err := coerceVariableValue(v, t.Type, false)
			if err != nil {
				return nil, fmt.Errorf("error coercing index %v: %v", i, err)
			}
			result[i] = coerced
		}
		return result, nil
	}

	if !allowItemToListCoercion {
		return nil, fmt.Errorf("cannot coerce to %v", t)
	}

	coerced, err := coerceVariableValue(value, t.Type, true)
	if err != nil {
		return nil, err
	}
	return []interface{}{coerced}, nil
}

// coerceLiteral is the AST-literal counterpart of coerceVariableValue. See
// its docs for the allowItemToListCoercion rule.
func (t *ListType) coerceLiteral(from ast.Value, variableValues map[string]interface{}, allowItemToListCoercion bool) (interface{}, error) {
	if list, ok := from.(*ast.ListValue); ok {
		result := make([]interface{}, len(list.Values))
		for i, v := range list.Values {
			coerced, err := coerceLiteral(v, t.Type, variableValues, false)
			if err != nil {
				return nil, fmt.Errorf("error coercing index %v: %v", i, err)
			}
			result[i] = coerced
		}
		return result, nil
	}

	if !allowItemToListCoercion {
		return nil, fmt.Errorf("cannot coerce to %v", t)
	}

	coerced, err := coerceLiteral(from, t.Type, variableValues, true)
	if err != nil {
		return nil, err
	}
	return []interface{}{coerced}, nil
}

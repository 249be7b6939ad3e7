package validator

import (
	"fmt"

	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/schema"
)

// valuesVisitor checks every value literal against the type TypeInfo
// expects there, without performing the coercion itself.
func valuesVisitor() *Visitor {
	return &Visitor{
		Enter: func(c *Context, node ast.Node) Action {
			switch node := node.(type) {
			case *ast.Variable:
				// variable types are validated by variable validation rules
			case ast.Value:
				if expected, ok := c.TypeInfo.ExpectedTypes[node]; ok {
					for _, err := range validateCoercion(node, expected, true) {
						c.ReportError(err)
					}
				} else {
					c.ReportError(newSecondaryError(node, "no type info for value"))
				}
				return Skip
			}
			return Continue
		},
	}
}

// validateCoercion mirrors schema.CoerceLiteral's logic without performing
// any coercion, so it can report every problem with from instead of
// stopping at the first one.
func validateCoercion(from ast.Value, to schema.Type, allowItemToListCoercion bool) []*Error {
	var ret []*Error

	if _, ok := from.(*ast.Variable); ok {
		return ret
	}

	if ast.IsNullValue(from) {
		if schema.IsNonNullType(to) {
			ret = append(ret, newError(from, "cannot coerce null to non-null type"))
		}
		return ret
	}

	switch to := to.(type) {
	case *schema.ScalarType:
		if to.LiteralCoercion != nil && to.LiteralCoercion(from) == nil {
			ret = append(ret, newError(from, "cannot coerce to %v", to))
		}
	case *schema.ListType:
		if fromList, ok := from.(*ast.ListValue); ok {
			for _, value := range fromList.Values {
				ret = append(ret, validateCoercion(value, to.Type, false)...)
			}
			return ret
		} else if allowItemToListCoercion {
			return validateCoercion(from, to.Type, true)
		}
		ret = append(ret, newError(from, "cannot coerce to %v", to))
	case *schema.InputObjectType:
		if from, ok := from.(*ast.ObjectValue); ok {
			fieldsByName := map[string]*ast.ObjectField{}
			for _, field := range from.Fields {
				if _, ok := fieldsByName[field.Name.Name]; ok {
					ret = append(ret, newError(field, "duplicate field: %v", field.Name.Name))
				}
				fieldsByName[field.Name.Name] = field

				if def, ok := to.Fields[field.Name.Name]; ok {
					ret = append(ret, validateCoercion(field.Value, def.Type, true)...)
				} else {
					ret = append(ret, newError(field, "field %v does not exist on %v", field.Name.Name, to.Name))
				}
			}

			for name, field := range to.Fields {
				if schema.IsNonNullType(field.Type) && field.DefaultValue == nil {
					if _, ok := fieldsByName[name]; !ok {
						ret = append(ret, newError(from, "the %v field is required", name))
					}
				}
			}
			return ret
		}
		ret = append(ret, newError(from, "cannot coerce to %v", to))
	case *schema.EnumType:
		if _, err := to.CoerceLiteral(from); err != nil {
			ret = append(ret, newError(from, "cannot coerce to %v", to))
		}
	case *schema.NonNullType:
		return validateCoercion(from, to.Type, allowItemToListCoercion)
	default:
		panic(fmt.Sprintf("unsupported input coercion type: %T", to))
	}
	return ret
}

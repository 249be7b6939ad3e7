package executor

import (
	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/schema"
	"github.com/nilsbr/gqlcore/schema/introspection"
)

// schemaType resolves an AST type reference against s, mirroring
// validator.schemaType. The executor keeps its own copy because it runs
// without a validator.TypeInfo in hand (a request may be executed against a
// document that was validated in a separate pass, or not at all).
func schemaType(t ast.Type, s *schema.Schema) schema.Type {
	switch t := t.(type) {
	case *ast.ListType:
		if inner := schemaType(t.Type, s); inner != nil {
			return schema.NewListType(inner)
		}
	case *ast.NonNullType:
		if inner := schemaType(t.Type, s); inner != nil {
			return schema.NewNonNullType(inner)
		}
	case *ast.NamedType:
		return namedType(s, t.Name.Name)
	}
	return nil
}

// namedType resolves name against s, falling back to the introspection
// system's own named types so that e.g. a variable of type __TypeKind can be
// coerced.
func namedType(s *schema.Schema, name string) schema.NamedType {
	if t := s.NamedType(name); t != nil {
		return t
	}
	return introspection.NamedTypes[name]
}

// coerceVariableValues implements CoerceVariableValues: for every variable an
// operation declares, resolves its value from the request's raw
// variableValues (falling through to the variable's own default, then to
// absence for nullable variables), coercing it to the variable's declared
// type.
func coerceVariableValues(s *schema.Schema, operation *ast.OperationDefinition, variableValues map[string]interface{}) (map[string]interface{}, *Error) {
	result := map[string]interface{}{}

	for _, def := range operation.VariableDefinitions {
		name := def.Variable.Name.Name
		t := schemaType(def.Type, s)
		if t == nil {
			return nil, newError(def, "unknown type: %v", def.Type)
		}

		if raw, ok := variableValues[name]; ok {
			coerced, err := schema.CoerceVariableValue(raw, t)
			if err != nil {
				return nil, newError(def, "invalid value for the %v variable: %v", name, err)
			}
			result[name] = coerced
		} else if def.DefaultValue != nil {
			coerced, err := schema.CoerceLiteral(def.DefaultValue, t, nil)
			if err != nil {
				return nil, newError(def, "invalid default value for the %v variable: %v", name, err)
			}
			result[name] = coerced
		} else if schema.IsNonNullType(t) {
			return nil, newError(def, "the %v variable is required", name)
		}
	}

	return result, nil
}

// coerceArgumentValues implements CoerceArgumentValues: for every argument a
// field or directive declares, resolves its value from the arguments
// supplied in the document (falling through to variables, then to the
// argument's own default, then to absence), coercing it to the argument's
// declared type. A variable reference that isn't present in variableValues
// is treated exactly as if the argument had been omitted, matching
// InputObjectType.CoerceLiteral's field-level semantics.
func coerceArgumentValues(node ast.Node, argumentDefinitions map[string]*schema.InputValueDefinition, arguments []*ast.Argument, variableValues map[string]interface{}) (map[string]interface{}, *Error) {
	result := map[string]interface{}{}

	provided := map[string]*ast.Argument{}
	for _, arg := range arguments {
		provided[arg.Name.Name] = arg
	}

	for name, def := range argumentDefinitions {
		arg, hasValue := provided[name]
		if hasValue {
			if variable, isVariable := arg.Value.(*ast.Variable); isVariable {
				if _, ok := variableValues[variable.Name.Name]; !ok {
					hasValue = false
				}
			}
		}

		if hasValue {
			coerced, err := schema.CoerceLiteral(arg.Value, def.Type, variableValues)
			if err != nil {
				return nil, newError(arg, "invalid value for the %v argument: %v", name, err)
			}
			result[name] = coerced
		} else if def.DefaultValue != nil {
			if def.DefaultValue == schema.Null {
				result[name] = nil
			} else {
				result[name] = def.DefaultValue
			}
		} else if schema.IsNonNullType(def.Type) {
			return nil, newError(node, "the %v argument is required", name)
		}
	}

	return result, nil
}

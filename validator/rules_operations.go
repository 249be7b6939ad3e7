package validator

import (
	"github.com/nilsbr/gqlcore/ast"
)

// validateExecutableDefinitions checks that every definition in an
// executable document is an operation or a fragment. SDL-only constructs
// (type, schema, directive definitions/extensions) have no business in a
// query document.
func validateExecutableDefinitions(c *Context) {
	for _, def := range c.Document.Definitions {
		switch def.(type) {
		case *ast.OperationDefinition, *ast.FragmentDefinition:
		default:
			c.ReportError(newError(def, "the %v definition is not executable", definitionKind(def)))
		}
	}
}

func definitionKind(def ast.Definition) string {
	switch def.(type) {
	case *ast.SchemaDefinition:
		return "schema"
	case *ast.ScalarTypeDefinition:
		return "scalar type"
	case *ast.ObjectTypeDefinition:
		return "object type"
	case *ast.InterfaceTypeDefinition:
		return "interface type"
	case *ast.UnionTypeDefinition:
		return "union type"
	case *ast.EnumTypeDefinition:
		return "enum type"
	case *ast.InputObjectTypeDefinition:
		return "input object type"
	case *ast.DirectiveDefinition:
		return "directive"
	case *ast.TypeExtension:
		return "extension"
	default:
		return "type system"
	}
}

// validateOperations checks operation-name uniqueness, that an anonymous
// operation is the document's only operation, and that subscriptions
// select exactly one root field. Anonymous-operation counting needs every
// operation in the document at once, so this runs as its own pass.
func validateOperations(c *Context) {
	anonymousOperationCount := 0
	operationNames := map[string]struct{}{}

	fragmentDefinitions := map[string]*ast.FragmentDefinition{}
	for _, def := range c.Document.Definitions {
		if def, ok := def.(*ast.FragmentDefinition); ok {
			fragmentDefinitions[def.Name.Name] = def
		}
	}

	for _, def := range c.Document.Definitions {
		def, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}

		if def.Name == nil {
			anonymousOperationCount++
		} else if _, ok := operationNames[def.Name.Name]; ok {
			c.ReportError(newError(def.Name, "an operation named %v already exists", def.Name.Name))
		} else {
			operationNames[def.Name.Name] = struct{}{}
		}

		if _, ok := c.TypeInfo.SelectionSetTypes[def.SelectionSet]; !ok {
			c.ReportError(newError(def, "unsupported operation type"))
		}

		if opType := def.OperationType; opType != nil && opType.Value == "subscription" {
			fieldsForName := map[string][]fieldAndParent{}
			if err := addFieldSelections(fieldsForName, def.SelectionSet, fragmentDefinitions); err != nil {
				c.ReportError(err)
			} else if len(fieldsForName) != 1 {
				c.ReportError(newError(def, "subscriptions may only have one root field"))
			}
		}
	}

	if anonymousOperationCount > 0 {
		seen := 0
		for _, def := range c.Document.Definitions {
			if def, ok := def.(*ast.OperationDefinition); ok {
				seen++
				if seen == 2 {
					c.ReportError(newError(def, "only one operation is allowed when an anonymous operation is present"))
					break
				}
			}
		}
	}
}

package validator

import (
	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/schema"
)

// validateVariables checks that every variable is declared once, has a
// known input type, is used compatibly with every location it appears in
// (including through spread fragments), and is actually used. Variable
// usage has to be traced through the fragments an operation spreads
// (transitively), so this runs as its own pass per operation rather than
// through Walk.
func validateVariables(c *Context) {
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

		variableDefinitions := map[string]*ast.VariableDefinition{}
		for _, vd := range def.VariableDefinitions {
			name := vd.Variable.Name.Name
			if _, ok := variableDefinitions[name]; ok {
				c.ReportError(newError(vd.Variable.Name, "a variable named %v already exists", name))
			} else {
				variableDefinitions[name] = vd
			}

			if t := c.TypeInfo.VariableDefinitionTypes[vd]; t == nil {
				c.ReportError(newError(vd.Type, "unknown type%v", didYouMean(suggestionList(innermostTypeName(vd.Type), namedTypeNames(c.Schema)))))
			} else if !t.IsInputType() {
				c.ReportError(newError(vd.Type, "%v is not an input type", t))
			}
		}

		encounteredVariables := map[string]struct{}{}
		unvalidatedFragmentSpreads := map[string]bool{}
		validatedFragmentSpreads := map[string]bool{}

		validate := func(node ast.Node) {
			ast.Inspect(node, func(node ast.Node) bool {
				switch node := node.(type) {
				case *ast.Variable:
					if def, ok := variableDefinitions[node.Name.Name]; !ok {
						c.ReportError(newError(node, "undefined variable: $%v%v", node.Name.Name, didYouMean(suggestionList(node.Name.Name, variableNames(variableDefinitions)))))
					} else if err := validateVariableUsage(def, node, c.TypeInfo); err != nil {
						c.ReportError(err)
					}
					encounteredVariables[node.Name.Name] = struct{}{}
				case *ast.VariableDefinition:
					return false
				case *ast.FragmentSpread:
					if name := node.FragmentName.Name; !validatedFragmentSpreads[name] {
						unvalidatedFragmentSpreads[name] = true
					}
				}
				return true
			})
		}
		validate(def)

		for len(unvalidatedFragmentSpreads) > 0 {
			for name := range unvalidatedFragmentSpreads {
				delete(unvalidatedFragmentSpreads, name)
				validatedFragmentSpreads[name] = true
				if fragDef, ok := fragmentDefinitions[name]; ok {
					validate(fragDef)
				}
			}
		}

		for _, vd := range def.VariableDefinitions {
			if _, ok := encounteredVariables[vd.Variable.Name.Name]; !ok {
				c.ReportError(newError(vd.Variable, "unused variable: $%v", vd.Variable.Name.Name))
			}
		}
	}
}

func innermostTypeName(t ast.Type) string {
	switch t := t.(type) {
	case *ast.ListType:
		return innermostTypeName(t.Type)
	case *ast.NonNullType:
		return innermostTypeName(t.Type)
	case *ast.NamedType:
		return t.Name.Name
	default:
		return ""
	}
}

func variableNames(variableDefinitions map[string]*ast.VariableDefinition) []string {
	names := make([]string, 0, len(variableDefinitions))
	for name := range variableDefinitions {
		names = append(names, name)
	}
	return names
}

func validateVariableUsage(def *ast.VariableDefinition, usage *ast.Variable, typeInfo *TypeInfo) *Error {
	variableType := typeInfo.VariableDefinitionTypes[def]
	locationType := typeInfo.ExpectedTypes[usage]

	if variableType == nil {
		return newSecondaryError(def, "no type info for variable type")
	} else if locationType == nil {
		return newSecondaryError(usage, "no type info for location type")
	}

	if nonNullLocationType, ok := locationType.(*schema.NonNullType); ok && !schema.IsNonNullType(variableType) {
		hasNonNullVariableDefaultValue := def.DefaultValue != nil && !ast.IsNullValue(def.DefaultValue)
		hasLocationDefaultValue := typeInfo.DefaultValues[usage] != nil
		if !hasNonNullVariableDefaultValue && !hasLocationDefaultValue {
			return newError(usage, "cannot use nullable variable where non-null type is expected")
		}
		locationType = nonNullLocationType.Type
	}

	if !areTypesCompatible(variableType, locationType) {
		return newError(usage, "incompatible variable type")
	}

	return nil
}

func areTypesCompatible(variableType, locationType schema.Type) bool {
	if nonNullLocationType, ok := locationType.(*schema.NonNullType); ok {
		if nonNullVariableType, ok := variableType.(*schema.NonNullType); ok {
			return areTypesCompatible(nonNullVariableType.Type, nonNullLocationType.Type)
		}
		return false
	}

	if nonNullVariableType, ok := variableType.(*schema.NonNullType); ok {
		return areTypesCompatible(nonNullVariableType.Type, locationType)
	}

	if listLocationType, ok := locationType.(*schema.ListType); ok {
		if listVariableType, ok := variableType.(*schema.ListType); ok {
			return areTypesCompatible(listVariableType.Type, listLocationType.Type)
		}
		return false
	}

	if _, ok := variableType.(*schema.ListType); ok {
		return false
	}

	return variableType.IsSameType(locationType)
}

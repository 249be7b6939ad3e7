package validator

import (
	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/schema"
)

// argumentsVisitor checks every argument list (on a field or a directive
// application) for undefined arguments, duplicates, and missing required
// arguments.
func argumentsVisitor() *Visitor {
	return &Visitor{
		Enter: func(c *Context, node ast.Node) Action {
			var arguments []*ast.Argument
			var argumentDefinitions map[string]*schema.InputValueDefinition

			switch node := node.(type) {
			case *ast.Directive:
				if def := c.Schema.DirectiveDefinition(node.Name.Name); def != nil {
					arguments = node.Arguments
					argumentDefinitions = def.Arguments
				} else {
					c.ReportError(newSecondaryError(node, "undefined directive"))
					return Continue
				}
			case *ast.Field:
				arguments = node.Arguments
				if def := c.TypeInfo.FieldDefinitions[node]; def != nil {
					argumentDefinitions = def.Arguments
				} else if node.Name.Name != "__typename" {
					c.ReportError(newSecondaryError(node, "no type info for field"))
					return Continue
				}
			default:
				return Continue
			}

			if len(arguments) == 0 && len(argumentDefinitions) == 0 {
				return Continue
			}

			byName := map[string]*ast.Argument{}
			for _, argument := range arguments {
				name := argument.Name.Name
				if argumentDefinitions[name] == nil {
					names := make([]string, 0, len(argumentDefinitions))
					for n := range argumentDefinitions {
						names = append(names, n)
					}
					c.ReportError(newError(argument, "undefined argument: %v%v", name, didYouMean(suggestionList(name, names))))
				} else if _, ok := byName[name]; ok {
					c.ReportError(newError(argument, "duplicate argument: %v", name))
				} else {
					byName[name] = argument
				}
			}

			for name, def := range argumentDefinitions {
				if schema.IsNonNullType(def.Type) && def.DefaultValue == nil {
					if arg, ok := byName[name]; !ok {
						c.ReportError(newError(node, "the %v argument is required", name))
					} else if ast.IsNullValue(arg.Value) {
						c.ReportError(newSecondaryError(arg.Value, "the %v argument cannot be null", name))
					}
				}
			}

			return Continue
		},
	}
}

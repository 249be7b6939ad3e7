package validator

import (
	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/schema"
)

// directivesVisitor checks every directive application: that the directive
// is known, allowed at its location, and not repeated at the same location.
func directivesVisitor() *Visitor {
	return &Visitor{
		Enter: func(c *Context, node ast.Node) Action {
			var directives []*ast.Directive
			var location schema.DirectiveLocation

			switch node := node.(type) {
			case *ast.OperationDefinition:
				directives = node.Directives
				if op := node.OperationType; op == nil || op.Value == "query" {
					location = schema.DirectiveLocationQuery
				} else if op.Value == "mutation" {
					location = schema.DirectiveLocationMutation
				} else if op.Value == "subscription" {
					location = schema.DirectiveLocationSubscription
				}
			case *ast.FragmentDefinition:
				directives = node.Directives
				location = schema.DirectiveLocationFragmentDefinition
			case *ast.Field:
				directives = node.Directives
				location = schema.DirectiveLocationField
			case *ast.FragmentSpread:
				directives = node.Directives
				location = schema.DirectiveLocationFragmentSpread
			case *ast.InlineFragment:
				directives = node.Directives
				location = schema.DirectiveLocationInlineFragment
			case *ast.VariableDefinition:
				directives = node.Directives
				location = schema.DirectiveLocationVariableDefinition
			default:
				return Continue
			}

			if len(directives) == 0 {
				return Continue
			}

			names := make(map[string]struct{}, len(directives))
			for _, directive := range directives {
				name := directive.Name.Name

				if def := c.Schema.DirectiveDefinition(name); def == nil {
					directiveNames := make([]string, 0, len(c.Schema.Directives()))
					for n := range c.Schema.Directives() {
						directiveNames = append(directiveNames, n)
					}
					c.ReportError(newError(directive, "undefined directive: %v%v", name, didYouMean(suggestionList(name, directiveNames))))
				} else {
					allowed := false
					for _, l := range def.Locations {
						if l == location {
							allowed = true
							break
						}
					}
					if !allowed {
						c.ReportError(newError(directive, "directive %v is not allowed at this location", name))
					}
				}

				if _, ok := names[name]; ok {
					c.ReportError(newError(directive, "directive %v already exists at this location", name))
				} else {
					names[name] = struct{}{}
				}
			}
			// Every *ast.Directive node is reached above through its
			// owning node's Directives slice, so there's nothing left to
			// do when Walk later visits the Directive nodes themselves.
			return Continue
		},
	}
}

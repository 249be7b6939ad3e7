package validator

import (
	"context"
	"fmt"

	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/schema"
)

const maxUint = ^uint(0)
const maxInt = int(maxUint >> 1)

// checkedNonNegativeMultiply multiplies two non-negative numbers, returning
// -1 if either is negative or the result would overflow.
func checkedNonNegativeMultiply(a, b int) int {
	if a < 0 || b < 0 {
		return -1
	} else if a == 0 || b == 0 || a == 1 || b == 1 {
		return a * b
	}
	c := a * b
	if c/b != a {
		return -1
	}
	return c
}

// checkedNonNegativeAdd adds two non-negative numbers, returning -1 if
// either is negative or the result would overflow.
func checkedNonNegativeAdd(a, b int) int {
	if a < 0 || b < 0 || a > maxInt-b {
		return -1
	}
	return a + b
}

// ValidateCost computes the cost of the named operation (or the document's
// sole operation, if operationName is "") and reports an error if it
// exceeds max. If max is negative, no limit is enforced but the cost is
// still computed. If actual is non-nil, it's set to the computed cost (or
// to the maximum possible int, if the cost overflowed). A field's cost
// comes from its FieldDefinition.Cost function, or from defaultCost if it
// has none.
func ValidateCost(operationName string, variableValues map[string]interface{}, max int, actual *int, defaultCost schema.FieldCost) Rule {
	return func(c *Context) {
		var op *ast.OperationDefinition
		for _, def := range c.Document.Definitions {
			if def, ok := def.(*ast.OperationDefinition); ok {
				if operationName == "" || (def.Name != nil && def.Name.Name == operationName) {
					if op != nil {
						op = nil
						break
					}
					op = def
				}
			}
		}
		if op == nil {
			return
		}

		fragmentsByName := map[string]*ast.FragmentDefinition{}
		for _, def := range c.Document.Definitions {
			if def, ok := def.(*ast.FragmentDefinition); ok {
				fragmentsByName[def.Name.Name] = def
			}
		}

		coercedVariableValues, err := coerceVariableValuesForCost(c, op, variableValues)
		if err != nil {
			c.ReportError(newSecondaryError(op, "%s", err.Error()))
			return
		}

		var cost int
		var failed bool
		multipliers := []int{1}
		ctxs := []context.Context{context.Background()}
		fragmentsOnStack := map[string]struct{}{}

		var visitNode func(node ast.Node)
		visitNode = func(node ast.Node) {
			ast.Inspect(node, func(node ast.Node) bool {
				if failed {
					return false
				}
				if node == nil {
					multipliers = multipliers[:len(multipliers)-1]
					ctxs = ctxs[:len(ctxs)-1]
					return true
				}

				multiplier := multipliers[len(multipliers)-1]
				ctx := ctxs[len(ctxs)-1]
				newMultiplier := multiplier
				newCtx := ctx

				if selectionSet, ok := node.(*ast.SelectionSet); ok {
					for _, selection := range selectionSet.Selections {
						switch selection := selection.(type) {
						case *ast.Field:
							def := c.TypeInfo.FieldDefinitions[selection]
							if def == nil {
								if selection.Name.Name != "__typename" {
									c.ReportError(newSecondaryError(selection, "unknown field type"))
									failed = true
									return false
								}
								continue
							}
							args, err := coerceArgumentValuesForCost(def, selection.Arguments, coercedVariableValues)
							if err != nil {
								c.ReportError(newSecondaryError(selection, "%s", err.Error()))
								failed = true
								return false
							}
							fieldCost := defaultCost
							if def.Cost != nil {
								fieldCost = def.Cost(schema.FieldCostContext{
									Context:   ctx,
									Arguments: args,
								})
							}
							cost = checkedNonNegativeAdd(cost, checkedNonNegativeMultiply(multiplier, fieldCost.Resolver))
							if fieldCost.Multiplier > 1 {
								newMultiplier = checkedNonNegativeMultiply(multiplier, fieldCost.Multiplier)
							}
							if fieldCost.Context != nil {
								newCtx = fieldCost.Context
							}
						case *ast.FragmentSpread:
							name := selection.FragmentName.Name
							if _, ok := fragmentsOnStack[name]; ok {
								c.ReportError(newSecondaryError(selection, "fragment cycle detected"))
								failed = true
								return false
							}
							if def, ok := fragmentsByName[name]; ok {
								fragmentsOnStack[name] = struct{}{}
								visitNode(def)
								delete(fragmentsOnStack, name)
							} else {
								c.ReportError(newSecondaryError(selection, "undefined fragment"))
								failed = true
								return false
							}
						}
					}
				}

				multipliers = append(multipliers, newMultiplier)
				ctxs = append(ctxs, newCtx)
				return true
			})
		}

		visitNode(op)
		if failed {
			return
		}

		if actual != nil {
			if cost < 0 {
				*actual = maxInt
			} else {
				*actual = cost
			}
		}

		if max >= 0 {
			if cost < 0 {
				c.ReportError(newError(op, "operation cost is too high to calculate"))
			} else if cost > max {
				c.ReportError(newError(op, "operation cost of %v exceeds allowed cost of %v", cost, max))
			}
		}
	}
}

// coerceVariableValuesForCost coerces operation's declared variables from
// variableValues, using TypeInfo's precomputed variable types rather than
// re-resolving them against the schema. It mirrors executor.coerceVariableValues,
// kept separate since validator can't import executor (executor imports
// validator).
func coerceVariableValuesForCost(c *Context, operation *ast.OperationDefinition, variableValues map[string]interface{}) (map[string]interface{}, error) {
	result := map[string]interface{}{}

	for _, def := range operation.VariableDefinitions {
		name := def.Variable.Name.Name
		t := c.TypeInfo.VariableDefinitionTypes[def]
		if t == nil {
			return nil, fmt.Errorf("unknown type: %v", def.Type)
		}

		if raw, ok := variableValues[name]; ok {
			coerced, err := schema.CoerceVariableValue(raw, t)
			if err != nil {
				return nil, fmt.Errorf("invalid value for the %v variable: %v", name, err)
			}
			result[name] = coerced
		} else if def.DefaultValue != nil {
			coerced, err := schema.CoerceLiteral(def.DefaultValue, t, nil)
			if err != nil {
				return nil, fmt.Errorf("invalid default value for the %v variable: %v", name, err)
			}
			result[name] = coerced
		} else if schema.IsNonNullType(t) {
			return nil, fmt.Errorf("the %v variable is required", name)
		}
	}

	return result, nil
}

// coerceArgumentValuesForCost coerces the arguments supplied for a field
// against its declared field definition, falling through to variables, then
// defaults. It mirrors executor.coerceArgumentValues, kept separate for the
// same import-cycle reason as coerceVariableValuesForCost.
func coerceArgumentValuesForCost(def *schema.FieldDefinition, arguments []*ast.Argument, variableValues map[string]interface{}) (map[string]interface{}, error) {
	result := map[string]interface{}{}

	provided := map[string]*ast.Argument{}
	for _, arg := range arguments {
		provided[arg.Name.Name] = arg
	}

	for name, argDef := range def.Arguments {
		arg, hasValue := provided[name]
		if hasValue {
			if variable, isVariable := arg.Value.(*ast.Variable); isVariable {
				if _, ok := variableValues[variable.Name.Name]; !ok {
					hasValue = false
				}
			}
		}

		if hasValue {
			coerced, err := schema.CoerceLiteral(arg.Value, argDef.Type, variableValues)
			if err != nil {
				return nil, fmt.Errorf("invalid value for the %v argument: %v", name, err)
			}
			result[name] = coerced
		} else if argDef.DefaultValue != nil {
			if argDef.DefaultValue == schema.Null {
				result[name] = nil
			} else {
				result[name] = argDef.DefaultValue
			}
		} else if schema.IsNonNullType(argDef.Type) {
			return nil, fmt.Errorf("the %v argument is required", name)
		}
	}

	return result, nil
}

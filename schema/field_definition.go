package schema

import (
	"context"
	"fmt"
	"strings"
)

// FieldContext is passed to a field's Resolve function.
type FieldContext struct {
	Context   context.Context
	Schema    *Schema
	Object    interface{}
	Arguments map[string]interface{}

	// IsSubscribe is true when this field is being invoked for a
	// subscription's subscribe phase. Subselections are not executed,
	// and the return value is handed directly back to the caller of
	// Subscribe rather than to the normal execution algorithm.
	IsSubscribe bool
}

// FieldCost describes the cost of resolving a field, enabling rate
// limiting and query-cost metering.
type FieldCost struct {
	// Context, if non-nil, is passed on to sub-selections of the field.
	Context context.Context

	// Resolver is the cost of running the resolver itself. Typically 1.
	Resolver int

	// Multiplier scales the cost of every sub-selection of the field,
	// e.g. the expected result count of a list field. Defaults to 1.
	Multiplier int
}

// FieldResolverCost returns a cost function with a constant resolver cost
// and no multiplier.
func FieldResolverCost(n int) func(FieldCostContext) FieldCost {
	return func(FieldCostContext) FieldCost {
		return FieldCost{
			Resolver: n,
		}
	}
}

// FieldCostContext is passed to a field's Cost function.
type FieldCostContext struct {
	Context   context.Context
	Arguments map[string]interface{}
}

// FieldDefinition defines one field of an object or interface type.
type FieldDefinition struct {
	Description       string
	Arguments         map[string]*InputValueDefinition
	Type              Type
	Directives        []*Directive
	DeprecationReason string

	// Cost, if set, computes the field's execution cost so that the
	// total cost of an operation can be bounded before it executes.
	Cost func(FieldCostContext) FieldCost

	Resolve func(*FieldContext) (interface{}, error)

	// RequiredFeatures gates this field's availability, mirroring
	// ObjectType.RequiredFeatures for staged rollouts of individual
	// fields rather than whole types.
	RequiredFeatures FeatureSet
}

func (d *FieldDefinition) shallowValidate() error {
	if d.Type == nil {
		return fmt.Errorf("field is missing type")
	} else if !d.Type.IsOutputType() {
		return fmt.Errorf("%v cannot be used as a field type", d.Type)
	} else {
		for name := range d.Arguments {
			if !isName(name) || strings.HasPrefix(name, "__") {
				return fmt.Errorf("illegal field argument name: %v", name)
			}
		}
	}
	return nil
}

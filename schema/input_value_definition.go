package schema

import "fmt"

// InputValueDefinition defines an input value such as a field argument or
// an input object field.
type InputValueDefinition struct {
	Description string
	Type        Type

	// DefaultValue is set to Null for an explicit null default.
	DefaultValue interface{}

	Directives []*Directive
}

type explicitNull struct{}

// Null specifies an explicit "null" default value for an input value.
var Null = (*explicitNull)(nil)

func (d *InputValueDefinition) shallowValidate() error {
	if d.Type == nil {
		return fmt.Errorf("input value is missing type")
	} else if !d.Type.IsInputType() {
		return fmt.Errorf("%v cannot be used as an input value type", d.Type)
	}
	if d.DefaultValue != nil && d.DefaultValue != Null {
		if obj, ok := d.Type.(*InputObjectType); ok && obj.ResultCoercion == nil {
			return fmt.Errorf("assigning a default value to a %v requires it to define a result coercion function", d.Type)
		}
	}
	return nil
}

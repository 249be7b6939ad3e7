package schema

import (
	"context"
	"fmt"
	"strings"
)

// InterfaceType is a named set of fields that object types may implement.
type InterfaceType struct {
	Name        string
	Description string
	Directives  []*Directive
	Fields      map[string]*FieldDefinition

	// IsVisible, if set, gates this type's visibility in introspection.
	IsVisible func(context.Context) bool
}

func (t *InterfaceType) String() string {
	return t.Name
}

func (t *InterfaceType) IsInputType() bool {
	return false
}

func (t *InterfaceType) IsOutputType() bool {
	return true
}

func (t *InterfaceType) IsSubTypeOf(other Type) bool {
	return t.IsSameType(other)
}

func (t *InterfaceType) IsSameType(other Type) bool {
	return t == other
}

func (t *InterfaceType) NamedType() string {
	return t.Name
}

func (t *InterfaceType) IsTypeVisible(ctx context.Context) bool {
	if t.IsVisible == nil {
		return true
	}
	return t.IsVisible(ctx)
}

// GetField returns t's field definition named name, or nil if there is no
// such field or it's gated behind a feature not present in features.
func (t *InterfaceType) GetField(name string, features FeatureSet) *FieldDefinition {
	field, ok := t.Fields[name]
	if !ok || !field.RequiredFeatures.IsSubsetOf(features) {
		return nil
	}
	return field
}

// IsInterfaceType reports whether t is an *InterfaceType.
func IsInterfaceType(t Type) bool {
	_, ok := t.(*InterfaceType)
	return ok
}

func (t *InterfaceType) shallowValidate() error {
	if len(t.Fields) == 0 {
		return fmt.Errorf("%v must have at least one field", t.Name)
	} else {
		for name := range t.Fields {
			if !isName(name) || strings.HasPrefix(name, "__") {
				return fmt.Errorf("illegal field name: %v", name)
			}
		}
	}
	return nil
}

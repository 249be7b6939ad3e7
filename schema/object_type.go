package schema

import (
	"context"
	"fmt"
	"strings"
)

// ObjectType is a concrete output type with a set of fields, optionally
// implementing one or more interfaces and belonging to zero or more
// unions.
type ObjectType struct {
	Name                  string
	Description           string
	ImplementedInterfaces []*InterfaceType
	Directives            []*Directive
	Fields                map[string]*FieldDefinition

	// IsTypeOf reports whether a resolved value is an instance of this
	// type. Required for any object type used as a union member or
	// returned where an interface or union type is expected, so the
	// executor can pick the right concrete type to resolve against.
	IsTypeOf func(interface{}) bool

	// RequiredFeatures gates this type's availability, mirroring
	// UnionType.RequiredFeatures for object types used as union
	// members.
	RequiredFeatures FeatureSet

	// IsVisible, if set, gates this type's visibility in introspection.
	IsVisible func(context.Context) bool
}

func (d *ObjectType) String() string {
	return d.Name
}

func (d *ObjectType) IsInputType() bool {
	return false
}

func (d *ObjectType) IsOutputType() bool {
	return true
}

func (d *ObjectType) IsSubTypeOf(other Type) bool {
	if d.IsSameType(other) {
		return true
	} else if union, ok := other.(*UnionType); ok {
		for _, member := range union.MemberTypes {
			if d.IsSameType(member) {
				return true
			}
		}
	} else {
		for _, iface := range d.ImplementedInterfaces {
			if iface.IsSameType(other) {
				return true
			}
		}
	}
	return false
}

func (d *ObjectType) IsSameType(other Type) bool {
	return d == other
}

func (d *ObjectType) NamedType() string {
	return d.Name
}

func (d *ObjectType) TypeRequiredFeatures() FeatureSet {
	return d.RequiredFeatures
}

func (d *ObjectType) IsTypeVisible(ctx context.Context) bool {
	if d.IsVisible == nil {
		return true
	}
	return d.IsVisible(ctx)
}

// GetField returns d's field definition named name, or nil if there is no
// such field or it's gated behind a feature not present in features.
func (d *ObjectType) GetField(name string, features FeatureSet) *FieldDefinition {
	field, ok := d.Fields[name]
	if !ok || !field.RequiredFeatures.IsSubsetOf(features) {
		return nil
	}
	return field
}

// IsObjectType reports whether t is an *ObjectType.
func IsObjectType(t Type) bool {
	_, ok := t.(*ObjectType)
	return ok
}

// SatisfyInterface checks that d implements every field (and compatible
// argument) that iface requires.
func (d *ObjectType) SatisfyInterface(iface *InterfaceType) error {
	for name, ifaceField := range iface.Fields {
		field, ok := d.Fields[name]
		if !ok {
			return fmt.Errorf("object is missing field named %v", name)
		} else if !field.Type.IsSubTypeOf(ifaceField.Type) {
			return fmt.Errorf("object's %v field is not a subtype of the corresponding interface field", name)
		}
		for argName, ifaceArg := range ifaceField.Arguments {
			arg, ok := field.Arguments[argName]
			if !ok {
				return fmt.Errorf("object's %v field is missing argument named %v", name, argName)
			} else if !arg.Type.IsSameType(ifaceArg.Type) {
				return fmt.Errorf("object's %v field %v argument is not the same type as the corresponding interface argument", name, argName)
			}
		}
		for argName, arg := range field.Arguments {
			if _, ok := ifaceField.Arguments[argName]; !ok && IsNonNullType(arg.Type) {
				return fmt.Errorf("object's %v field %v argument cannot be non-null", name, argName)
			}
		}
	}
	return nil
}

func (d *ObjectType) shallowValidate() error {
	if len(d.Fields) == 0 {
		return fmt.Errorf("%v must have at least one field", d.Name)
	} else {
		for name, field := range d.Fields {
			if !isName(name) || strings.HasPrefix(name, "__") {
				return fmt.Errorf("illegal field name: %v", name)
			} else if !field.Type.IsOutputType() {
				return fmt.Errorf("%v field must be an output type", name)
			}
		}
	}
	return nil
}

// Package schema implements the GraphQL type system: scalar, object,
// interface, union, enum, input object, list, and non-null types, plus the
// directive and field definitions that reference them, and the validation
// and coercion rules that tie them together.
package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nilsbr/gqlcore/ast"
)

// Schema is a validated, immutable GraphQL schema: a set of named types and
// directive definitions reachable from a root operation type, with every
// named type's uniqueness and every type's internal consistency already
// checked by New.
type Schema struct {
	directiveDefinitions     map[string]*DirectiveDefinition
	namedTypes               map[string]NamedType
	interfaceImplementations map[string][]*ObjectType

	query        *ObjectType
	mutation     *ObjectType
	subscription *ObjectType

	// definition is the SchemaDefinition New built this schema from,
	// retained so ExtendSchema can clone and graft additional SDL
	// definitions onto it without mutating this schema.
	definition *SchemaDefinition
}

// Definition returns the SchemaDefinition s was built from.
func (s *Schema) Definition() *SchemaDefinition {
	return s.definition
}

func (s *Schema) QueryType() *ObjectType {
	return s.query
}

func (s *Schema) MutationType() *ObjectType {
	return s.mutation
}

func (s *Schema) SubscriptionType() *ObjectType {
	return s.subscription
}

func (s *Schema) DirectiveDefinition(name string) *DirectiveDefinition {
	return s.directiveDefinitions[name]
}

// Directives returns every directive definition in scope, keyed by name.
// Used by introspection to enumerate __Schema.directives.
func (s *Schema) Directives() map[string]*DirectiveDefinition {
	return s.directiveDefinitions
}

func (s *Schema) NamedType(name string) NamedType {
	return s.namedTypes[name]
}

// NamedTypes returns every named type in the schema, keyed by name. Used by
// introspection to enumerate __Schema.types and resolve __type(name:).
func (s *Schema) NamedTypes() map[string]NamedType {
	return s.namedTypes
}

func (s *Schema) InterfaceImplementations(name string) []*ObjectType {
	return s.interfaceImplementations[name]
}

var nameRegex = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

func isName(s string) bool {
	return nameRegex.MatchString(s)
}

// New validates def and builds a Schema from it. It rejects illegal or
// duplicate type/directive names, types that shadow a built-in, and any
// type that fails its own shallowValidate check (e.g. a non-null type
// wrapping another non-null type). It does not check that an object type
// satisfies the interfaces it claims to implement; that check is
// ObjectType.SatisfyInterface, which New does not call.
func New(def *SchemaDefinition) (*Schema, error) {
	var err error
	schema := &Schema{
		directiveDefinitions:     def.DirectiveDefinitions,
		namedTypes:               map[string]NamedType{},
		interfaceImplementations: map[string][]*ObjectType{},
		query:                    def.Query,
		mutation:                 def.Mutation,
		subscription:             def.Subscription,
		definition:               def,
	}

	if schema.query == nil {
		return nil, fmt.Errorf("schemas must define the query operation")
	}

	for name := range def.DirectiveDefinitions {
		if !isName(name) || strings.HasPrefix(name, "__") {
			return nil, fmt.Errorf("illegal directive name: %v", name)
		}
	}

	Inspect(def, func(node interface{}) bool {
		if err != nil {
			return false
		}

		if namedType, ok := node.(NamedType); ok {
			if name := namedType.NamedType(); !isName(name) || strings.HasPrefix(name, "__") {
				err = fmt.Errorf("illegal type name: %v", name)
			} else if existing, ok := schema.namedTypes[name]; ok && existing != namedType {
				err = fmt.Errorf("multiple definitions for named type: %v", name)
			} else if builtin, ok := BuiltInTypes[name]; ok && namedType != builtin {
				err = fmt.Errorf("%v builtin may not be overridden", name)
			} else if existing != nil {
				return false
			} else {
				schema.namedTypes[name] = namedType
			}
		}

		if obj, ok := node.(*ObjectType); ok {
			for _, iface := range obj.ImplementedInterfaces {
				schema.interfaceImplementations[iface.Name] = append(schema.interfaceImplementations[iface.Name], obj)
			}
		}

		if err == nil {
			if n, ok := node.(interface {
				shallowValidate() error
			}); ok {
				err = n.shallowValidate()
			}
		}

		return err == nil
	})

	if err != nil {
		return nil, err
	}
	return schema, nil
}

// SchemaDefinition is the unvalidated input to New: the root operation
// types, schema-level directives, and every directive definition in scope.
// Types are not listed explicitly; New discovers them by walking from the
// root operation types and AdditionalTypes.
type SchemaDefinition struct {
	Directives           []*Directive
	DirectiveDefinitions map[string]*DirectiveDefinition

	Query        *ObjectType
	Mutation     *ObjectType
	Subscription *ObjectType

	// AdditionalTypes adds otherwise unreferenced types (e.g. a union
	// member type that no field returns directly) to the schema.
	AdditionalTypes []NamedType
}

// Clone deep-copies def: every named type reachable from it is copied, and
// every pointer between those types is rewritten to point at the new
// copies, so the result shares no named-type pointers with def. Used by
// ExtendSchema to graft additional definitions onto a schema without
// mutating the original.
func (def *SchemaDefinition) Clone() *SchemaDefinition {
	return deepCopySchemaDefinition(def)
}

// Argument is a resolved directive argument: a name paired with its
// already-coerced value.
type Argument struct {
	Name  string
	Value interface{}
}

// Type is implemented by every GraphQL type: scalars, enums, objects,
// interfaces, unions, input objects, and the list/non-null wrapper types.
type Type interface {
	String() string
	IsInputType() bool
	IsOutputType() bool
	IsSubTypeOf(Type) bool
	IsSameType(Type) bool
}

// NamedType is implemented by the type kinds that introduce a name into the
// schema's type namespace: scalar, object, interface, union, enum, and
// input object types. ListType and NonNullType are not named types; they
// wrap one.
type NamedType interface {
	Type
	NamedType() string
}

// WrappedType is implemented by ListType and NonNullType, the two type
// kinds that modify another type rather than naming one directly.
type WrappedType interface {
	Type
	Unwrap() Type
}

// UnwrappedType strips every List/NonNull wrapper from t and returns the
// named type underneath.
func UnwrappedType(t Type) NamedType {
	for {
		if wrapped, ok := t.(WrappedType); ok {
			t = wrapped.Unwrap()
		} else {
			break
		}
	}
	if t != nil {
		return t.(NamedType)
	}
	return nil
}

// CoerceVariableValue coerces a decoded variable value (e.g. from a request
// JSON body) to t, per the GraphQL variable coercion rules.
func CoerceVariableValue(value interface{}, t Type) (interface{}, error) {
	return coerceVariableValue(value, t, true)
}

func coerceVariableValue(value interface{}, t Type, allowItemToListCoercion bool) (interface{}, error) {
	if value == nil {
		if IsNonNullType(t) {
			return nil, fmt.Errorf("a value is required")
		}
		return nil, nil
	}

	switch t := t.(type) {
	case *ScalarType:
		return t.CoerceVariableValue(value)
	case *EnumType:
		return t.CoerceVariableValue(value)
	case *InputObjectType:
		return t.CoerceVariableValue(value)
	case *ListType:
		return t.coerceVariableValue(value, allowItemToListCoercion)
	case *NonNullType:
		return CoerceVariableValue(value, t.Type)
	default:
		panic("unexpected variable coercion type")
	}
}

// CoerceLiteral coerces an AST value literal (possibly containing variable
// references, resolved via variableValues) to type to, per the GraphQL
// literal coercion rules.
func CoerceLiteral(from ast.Value, to Type, variableValues map[string]interface{}) (interface{}, error) {
	return coerceLiteral(from, to, variableValues, true)
}

func coerceLiteral(from ast.Value, to Type, variableValues map[string]interface{}, allowItemToListCoercion bool) (interface{}, error) {
	if ast.IsNullValue(from) {
		if IsNonNullType(to) {
			return nil, fmt.Errorf("cannot coerce null to non-null type")
		}
		return nil, nil
	} else if variable, ok := from.(*ast.Variable); ok {
		if value, ok := variableValues[variable.Name.Name]; ok {
			return value, nil
		}
	}

	switch to := to.(type) {
	case *ScalarType:
		if v := to.LiteralCoercion(from); v != nil {
			return v, nil
		}
		return nil, fmt.Errorf("cannot coerce to %v", to)
	case *ListType:
		return to.coerceLiteral(from, variableValues, allowItemToListCoercion)
	case *InputObjectType:
		if v, ok := from.(*ast.ObjectValue); ok {
			return to.CoerceLiteral(v, variableValues)
		}
		return nil, fmt.Errorf("cannot coerce to %v", to)
	case *EnumType:
		return to.CoerceLiteral(from)
	case *NonNullType:
		return CoerceLiteral(from, to.Type, variableValues)
	}

	panic("unsupported literal coercion type")
}

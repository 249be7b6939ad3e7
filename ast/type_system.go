package ast

import "github.com/nilsbr/gqlcore/token"

// InputValueDefinition describes one argument or input field in SDL: a
// name, a type, an optional default value, and directives.
type InputValueDefinition struct {
	Description  *StringValue
	Name         *Name
	Type         Type
	DefaultValue Value
	Directives   []*Directive
}

func (n *InputValueDefinition) Position() token.Position { return n.Name.Position() }

// FieldDefinition describes one field of an object or interface type.
type FieldDefinition struct {
	Description *StringValue
	Name        *Name
	Arguments   []*InputValueDefinition
	Type        Type
	Directives  []*Directive
}

func (n *FieldDefinition) Position() token.Position { return n.Name.Position() }

// EnumValueDefinition describes one member of an enum type.
type EnumValueDefinition struct {
	Description *StringValue
	Value       *Name
	Directives  []*Directive
}

func (n *EnumValueDefinition) Position() token.Position { return n.Value.Position() }

// DirectiveDefinitionLocation is a single location keyword in a directive
// definition's "on ..." clause.
type DirectiveDefinitionLocation struct {
	Value         string
	ValuePosition token.Position
}

func (n *DirectiveDefinitionLocation) Position() token.Position { return n.ValuePosition }

// ScalarTypeDefinition corresponds to SDL's "scalar Foo" syntax.
type ScalarTypeDefinition struct {
	Keyword     token.Position
	Description *StringValue
	Name        *Name
	Directives  []*Directive
}

func (n *ScalarTypeDefinition) Position() token.Position { return n.Keyword }

// ObjectTypeDefinition corresponds to SDL's "type Foo implements ... { ... }" syntax.
type ObjectTypeDefinition struct {
	Keyword     token.Position
	Description *StringValue
	Name        *Name
	Interfaces  []*NamedType
	Directives  []*Directive
	Fields      []*FieldDefinition
}

func (n *ObjectTypeDefinition) Position() token.Position { return n.Keyword }

// InterfaceTypeDefinition corresponds to SDL's "interface Foo { ... }" syntax.
type InterfaceTypeDefinition struct {
	Keyword     token.Position
	Description *StringValue
	Name        *Name
	Interfaces  []*NamedType
	Directives  []*Directive
	Fields      []*FieldDefinition
}

func (n *InterfaceTypeDefinition) Position() token.Position { return n.Keyword }

// UnionTypeDefinition corresponds to SDL's "union Foo = A | B" syntax.
type UnionTypeDefinition struct {
	Keyword     token.Position
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	MemberTypes []*NamedType
}

func (n *UnionTypeDefinition) Position() token.Position { return n.Keyword }

// EnumTypeDefinition corresponds to SDL's "enum Foo { A B C }" syntax.
type EnumTypeDefinition struct {
	Keyword     token.Position
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Values      []*EnumValueDefinition
}

func (n *EnumTypeDefinition) Position() token.Position { return n.Keyword }

// InputObjectTypeDefinition corresponds to SDL's "input Foo { ... }" syntax.
type InputObjectTypeDefinition struct {
	Keyword     token.Position
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Fields      []*InputValueDefinition
}

func (n *InputObjectTypeDefinition) Position() token.Position { return n.Keyword }

// DirectiveDefinition corresponds to SDL's "directive @foo(...) on ..." syntax.
type DirectiveDefinition struct {
	Keyword     token.Position
	Description *StringValue
	Name        *Name
	Arguments   []*InputValueDefinition
	Repeatable  bool
	Locations   []*DirectiveDefinitionLocation
}

func (n *DirectiveDefinition) Position() token.Position { return n.Keyword }

// RootOperationTypeDefinition binds one of query/mutation/subscription to a
// named object type within a SchemaDefinition or SchemaExtension.
type RootOperationTypeDefinition struct {
	OperationType *OperationType
	Type          *NamedType
}

func (n *RootOperationTypeDefinition) Position() token.Position { return n.OperationType.Position() }

// SchemaDefinition corresponds to SDL's "schema { query: ... }" syntax.
type SchemaDefinition struct {
	Keyword        token.Position
	Description    *StringValue
	Directives     []*Directive
	OperationTypes []*RootOperationTypeDefinition
}

func (n *SchemaDefinition) Position() token.Position { return n.Keyword }

// TypeExtension wraps an "extend ..." definition. Definition holds the
// inner type-system definition node describing what's being added. Its own
// Description is always nil since "extend" clauses don't redeclare a
// description; for a schema extension, OperationTypes holds the root
// operation types being added.
type TypeExtension struct {
	Keyword    token.Position
	Definition Definition
}

func (n *TypeExtension) Position() token.Position { return n.Keyword }

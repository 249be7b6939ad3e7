package ast

import (
	"fmt"
	"reflect"
)

// Inspect traverses node and every node it contains in depth-first order,
// calling f with each node. Traversal stops below any node for which f
// returns false. After visiting all of a node's children, f is also called
// once with nil to mark that the node and its children are done being
// visited; no such call is made for a node for which f returned false.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || reflect.ValueOf(node).IsNil() || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Document:
		for _, node := range n.Definitions {
			Inspect(node, f)
		}
	case *OperationDefinition:
		Inspect(n.Name, f)
		for _, node := range n.VariableDefinitions {
			Inspect(node, f)
		}
		for _, node := range n.Directives {
			Inspect(node, f)
		}
		Inspect(n.SelectionSet, f)
	case *FragmentDefinition:
		Inspect(n.Name, f)
		Inspect(n.TypeCondition, f)
		for _, node := range n.Directives {
			Inspect(node, f)
		}
		Inspect(n.SelectionSet, f)
	case *VariableDefinition:
		Inspect(n.Variable, f)
		Inspect(n.Type, f)
		Inspect(n.DefaultValue, f)
		for _, node := range n.Directives {
			Inspect(node, f)
		}
	case *ListType:
		Inspect(n.Type, f)
	case *NonNullType:
		Inspect(n.Type, f)
	case *Directive:
		Inspect(n.Name, f)
		for _, node := range n.Arguments {
			Inspect(node, f)
		}
	case *SelectionSet:
		for _, node := range n.Selections {
			Inspect(node, f)
		}
	case *Field:
		Inspect(n.Alias, f)
		Inspect(n.Name, f)
		for _, node := range n.Arguments {
			Inspect(node, f)
		}
		for _, node := range n.Directives {
			Inspect(node, f)
		}
		Inspect(n.SelectionSet, f)
	case *FragmentSpread:
		Inspect(n.FragmentName, f)
		for _, node := range n.Directives {
			Inspect(node, f)
		}
	case *InlineFragment:
		Inspect(n.TypeCondition, f)
		for _, node := range n.Directives {
			Inspect(node, f)
		}
		Inspect(n.SelectionSet, f)
	case *Argument:
		Inspect(n.Name, f)
		Inspect(n.Value, f)
	case *NamedType:
		Inspect(n.Name, f)
	case *Variable:
		Inspect(n.Name, f)
	case *Name, *BooleanValue, *IntValue, *FloatValue, *StringValue, *EnumValue, *NullValue, *OperationType:
	case *ListValue:
		for _, node := range n.Values {
			Inspect(node, f)
		}
	case *ObjectValue:
		for _, node := range n.Fields {
			Inspect(node, f)
		}
	case *ObjectField:
		Inspect(n.Name, f)
		Inspect(n.Value, f)
	case *InputValueDefinition:
		Inspect(n.Name, f)
		Inspect(n.Type, f)
		Inspect(n.DefaultValue, f)
		for _, node := range n.Directives {
			Inspect(node, f)
		}
	case *FieldDefinition:
		Inspect(n.Name, f)
		for _, node := range n.Arguments {
			Inspect(node, f)
		}
		Inspect(n.Type, f)
		for _, node := range n.Directives {
			Inspect(node, f)
		}
	case *EnumValueDefinition:
		Inspect(n.Value, f)
		for _, node := range n.Directives {
			Inspect(node, f)
		}
	case *DirectiveDefinitionLocation:
	case *ScalarTypeDefinition:
		Inspect(n.Name, f)
		for _, node := range n.Directives {
			Inspect(node, f)
		}
	case *ObjectTypeDefinition:
		Inspect(n.Name, f)
		for _, node := range n.Interfaces {
			Inspect(node, f)
		}
		for _, node := range n.Directives {
			Inspect(node, f)
		}
		for _, node := range n.Fields {
			Inspect(node, f)
		}
	case *InterfaceTypeDefinition:
		Inspect(n.Name, f)
		for _, node := range n.Interfaces {
			Inspect(node, f)
		}
		for _, node := range n.Directives {
			Inspect(node, f)
		}
		for _, node := range n.Fields {
			Inspect(node, f)
		}
	case *UnionTypeDefinition:
		Inspect(n.Name, f)
		for _, node := range n.Directives {
			Inspect(node, f)
		}
		for _, node := range n.MemberTypes {
			Inspect(node, f)
		}
	case *EnumTypeDefinition:
		Inspect(n.Name, f)
		for _, node := range n.Directives {
			Inspect(node, f)
		}
		for _, node := range n.Values {
			Inspect(node, f)
		}
	case *InputObjectTypeDefinition:
		Inspect(n.Name, f)
		for _, node := range n.Directives {
			Inspect(node, f)
		}
		for _, node := range n.Fields {
			Inspect(node, f)
		}
	case *DirectiveDefinition:
		Inspect(n.Name, f)
		for _, node := range n.Arguments {
			Inspect(node, f)
		}
		for _, node := range n.Locations {
			Inspect(node, f)
		}
	case *RootOperationTypeDefinition:
		Inspect(n.OperationType, f)
		Inspect(n.Type, f)
	case *SchemaDefinition:
		for _, node := range n.Directives {
			Inspect(node, f)
		}
		for _, node := range n.OperationTypes {
			Inspect(node, f)
		}
	case *TypeExtension:
		Inspect(n.Definition, f)
	default:
		panic(fmt.Errorf("unknown node type: %T", n))
	}

	f(nil)
}

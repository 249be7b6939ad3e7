package introspection_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilsbr/gqlcore/schema"
	"github.com/nilsbr/gqlcore/schema/introspection"
)

var petType = &schema.InterfaceType{
	Name: "Pet",
	Fields: map[string]*schema.FieldDefinition{
		"nickname": {
			Type: schema.StringType,
		},
		"age": {
			Type:             schema.IntType,
			RequiredFeatures: schema.NewFeatureSet("petage"),
		},
	},
}

var dogType = &schema.ObjectType{
	Name: "Dog",
	Fields: map[string]*schema.FieldDefinition{
		"nickname": {
			Type: schema.StringType,
		},
		"barkVolume": {
			Type: schema.IntType,
		},
	},
	ImplementedInterfaces: []*schema.InterfaceType{petType},
	IsTypeOf:              func(interface{}) bool { return false },
}

var objectType = &schema.ObjectType{
	Name: "Object",
	Fields: map[string]*schema.FieldDefinition{
		"pet": {
			Type: petType,
		},
		"int": {
			Type: schema.IntType,
		},
	},
}

func testSchema(t *testing.T) *schema.Schema {
	s, err := schema.New(&schema.SchemaDefinition{
		Query: objectType,
		DirectiveDefinitions: map[string]*schema.DirectiveDefinition{
			"directive": {
				Locations: []schema.DirectiveLocation{schema.DirectiveLocationField, schema.DirectiveLocationFragmentSpread, schema.DirectiveLocationInlineFragment},
			},
		},
		AdditionalTypes: []schema.NamedType{dogType},
	})
	require.NoError(t, err)
	return s
}

func TestIntrospection_SchemaFields(t *testing.T) {
	s := testSchema(t)

	ctx := &schema.FieldContext{Schema: s, Object: s}

	types, err := introspection.SchemaType.Fields["types"].Resolve(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, types)

	queryType, err := introspection.SchemaType.Fields["queryType"].Resolve(ctx)
	require.NoError(t, err)
	assert.Same(t, objectType, queryType)

	mutationType, err := introspection.SchemaType.Fields["mutationType"].Resolve(ctx)
	require.NoError(t, err)
	assert.Nil(t, mutationType)

	directives, err := introspection.SchemaType.Fields["directives"].Resolve(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, directives)
}

func TestIntrospection_TypeFields(t *testing.T) {
	s := testSchema(t)

	ctx := &schema.FieldContext{
		Schema:    s,
		Object:    objectType,
		Arguments: map[string]interface{}{"includeDeprecated": false},
	}

	kind, err := introspection.TypeType.Fields["kind"].Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "object", fmt.Sprintf("%v", kind))

	name, err := introspection.TypeType.Fields["name"].Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Object", name)

	fields, err := introspection.TypeType.Fields["fields"].Resolve(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, fields)
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectType_IsSubTypeOf(t *testing.T) {
	iface := &InterfaceType{
		Fields: map[string]*FieldDefinition{
			"a": {
				Type: StringType,
			},
		},
	}

	obj := &ObjectType{
		Fields: map[string]*FieldDefinition{
			"a": {
				Type: StringType,
			},
		},
		ImplementedInterfaces: []*InterfaceType{iface},
	}

	union := &UnionType{
		MemberTypes: []*ObjectType{obj},
	}

	assert.True(t, obj.IsSubTypeOf(obj))
	assert.True(t, obj.IsSubTypeOf(union))
	assert.True(t, obj.IsSubTypeOf(iface))
	assert.False(t, obj.IsSubTypeOf(IntType))
}

func TestObjectType_SatisfyInterface(t *testing.T) {
	iface := &InterfaceType{
		Fields: map[string]*FieldDefinition{
			"a": {
				Type: StringType,
				Arguments: map[string]*InputValueDefinition{
					"x": {Type: IntType},
				},
			},
		},
	}

	t.Run("Satisfies", func(t *testing.T) {
		obj := &ObjectType{
			Fields: map[string]*FieldDefinition{
				"a": {
					Type: NewNonNullType(StringType),
					Arguments: map[string]*InputValueDefinition{
						"x": {Type: IntType},
					},
				},
			},
		}
		assert.NoError(t, obj.SatisfyInterface(iface))
	})

	t.Run("MissingField", func(t *testing.T) {
		obj := &ObjectType{Fields: map[string]*FieldDefinition{}}
		assert.Error(t, obj.SatisfyInterface(iface))
	})

	t.Run("ExtraNonNullArgument", func(t *testing.T) {
		obj := &ObjectType{
			Fields: map[string]*FieldDefinition{
				"a": {
					Type: StringType,
					Arguments: map[string]*InputValueDefinition{
						"x": {Type: IntType},
						"y": {Type: NewNonNullType(IntType)},
					},
				},
			},
		}
		assert.Error(t, obj.SatisfyInterface(iface))
	})
}

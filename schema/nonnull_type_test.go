package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonNullType_IsSubTypeOf(t *testing.T) {
	iface := &InterfaceType{}
	obj := &ObjectType{
		ImplementedInterfaces: []*InterfaceType{iface},
	}
	assert.True(t, NewNonNullType(obj).IsSubTypeOf(NewNonNullType(iface)))
}

func TestNonNullType_ShallowValidate(t *testing.T) {
	assert.Error(t, NewNonNullType(NewNonNullType(IntType)).shallowValidate())
	assert.NoError(t, NewNonNullType(IntType).shallowValidate())
}

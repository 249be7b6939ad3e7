package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilsbr/gqlcore/parser"
)

func TestEnumType_Coercion(t *testing.T) {
	color := &EnumType{
		Name: "Color",
		Values: map[string]*EnumValueDefinition{
			"RED":  {Value: "#f00"},
			"BLUE": {},
		},
	}

	literal, errs := parser.ParseValue([]byte("RED"))
	require.Empty(t, errs)
	v, err := CoerceLiteral(literal, color, nil)
	require.NoError(t, err)
	assert.Equal(t, "#f00", v)

	v, err = CoerceVariableValue("BLUE", color)
	require.NoError(t, err)
	assert.Equal(t, "BLUE", v)

	_, err = CoerceVariableValue("GREEN", color)
	assert.Error(t, err)

	result, err := color.CoerceResult("#f00")
	require.NoError(t, err)
	assert.Equal(t, "RED", result)

	_, err = color.CoerceResult("unknown")
	assert.Error(t, err)
}

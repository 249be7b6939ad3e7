package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilsbr/gqlcore/persistedquery"
	"github.com/nilsbr/gqlcore/schema"
)

func TestStore_Lookup(t *testing.T) {
	s := New()

	result, err := s.Lookup(context.Background(), "unregistered")
	require.NoError(t, err)
	assert.Equal(t, persistedquery.Unknown, result.Kind)

	require.NoError(t, s.Register("q1", `{ hello }`))
	result, err = s.Lookup(context.Background(), "q1")
	require.NoError(t, err)
	require.Equal(t, persistedquery.Result, result.Kind)
	assert.NotNil(t, result.Document)

	require.NoError(t, s.Register("bad", `{`))
	result, err = s.Lookup(context.Background(), "bad")
	require.NoError(t, err)
	assert.Equal(t, persistedquery.ParseError, result.Kind)
	assert.NotNil(t, result.ParseErr)
}

func TestStore_LookupWithSchema(t *testing.T) {
	s := New()
	sch, err := schema.New(&schema.SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "Query",
			Fields: map[string]*schema.FieldDefinition{
				"hello": {
					Type: schema.NewNonNullType(schema.StringType),
					Resolve: func(*schema.FieldContext) (interface{}, error) {
						return "hi", nil
					},
				},
			},
		},
	})
	require.NoError(t, err)

	require.NoError(t, s.Register("valid", `{ hello }`))
	result, err := s.LookupWithSchema(context.Background(), "valid", sch, nil)
	require.NoError(t, err)
	assert.Equal(t, persistedquery.Result, result.Kind)

	require.NoError(t, s.Register("invalid", `{ goodbye }`))
	result, err = s.LookupWithSchema(context.Background(), "invalid", sch, nil)
	require.NoError(t, err)
	assert.Equal(t, persistedquery.ValidateErrors, result.Kind)
	assert.NotEmpty(t, result.ValidateErrs)
}

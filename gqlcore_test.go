package gqlcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/instrumentation"
	"github.com/nilsbr/gqlcore/persistedquery/memstore"
	"github.com/nilsbr/gqlcore/schema"
)

func testSchema(t *testing.T) *Schema {
	s, err := NewSchema(&SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "Query",
			Fields: map[string]*schema.FieldDefinition{
				"hello": {
					Type: schema.NewNonNullType(schema.StringType),
					Resolve: func(*schema.FieldContext) (interface{}, error) {
						return "world", nil
					},
				},
			},
		},
	})
	require.NoError(t, err)
	return s
}

func TestExecute(t *testing.T) {
	s := testSchema(t)

	resp := Execute(&Request{
		Query:  `{ hello }`,
		Schema: s,
	})
	assert.Empty(t, resp.Errors)
	require.NotNil(t, resp.Data)

	resp = Execute(&Request{
		Query:  `{ goodbye }`,
		Schema: s,
	})
	assert.Nil(t, resp.Data)
	assert.NotEmpty(t, resp.Errors)

	resp = Execute(&Request{
		Query:  `{`,
		Schema: s,
	})
	assert.Nil(t, resp.Data)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].Message, "Syntax error")
}

func TestExecute_Instrumentation(t *testing.T) {
	s := testSchema(t)

	var parsed, validated, executed, resolved int
	instr := &countingInstrumentation{
		onParse:    func() { parsed++ },
		onValidate: func() { validated++ },
		onExecute:  func() { executed++ },
		onResolve:  func() { resolved++ },
	}

	resp := Execute(&Request{
		Query:           `{ hello }`,
		Schema:          s,
		Instrumentation: instr,
	})
	assert.Empty(t, resp.Errors)
	assert.Equal(t, 1, parsed)
	assert.Equal(t, 1, validated)
	assert.Equal(t, 1, executed)
	assert.Equal(t, 1, resolved)
}

func TestExecute_PersistedQuery(t *testing.T) {
	s := testSchema(t)
	store := memstore.New()
	require.NoError(t, store.Register("abc", `{ hello }`))

	resp := Execute(&Request{
		PersistedQueryID: "abc",
		PersistedQueries: store,
		Schema:           s,
	})
	assert.Empty(t, resp.Errors)
	require.NotNil(t, resp.Data)

	resp = Execute(&Request{
		PersistedQueryID: "missing",
		PersistedQueries: store,
		Schema:           s,
	})
	assert.Nil(t, resp.Data)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "PersistedQueryNotFound", resp.Errors[0].Message)
}

type countingInstrumentation struct {
	onParse, onValidate, onExecute, onResolve func()
}

func (i *countingInstrumentation) QueryParsing(ctx context.Context) func(*ast.Document, error) {
	return func(*ast.Document, error) { i.onParse() }
}

func (i *countingInstrumentation) QueryValidation(ctx context.Context, doc *ast.Document) func([]error) {
	return func([]error) { i.onValidate() }
}

func (i *countingInstrumentation) OperationExecution(ctx context.Context, operationName string) func([]error) {
	return func([]error) { i.onExecute() }
}

func (i *countingInstrumentation) FieldResolution(ctx context.Context, info *instrumentation.FieldInfo) func(interface{}, error) {
	return func(interface{}, error) { i.onResolve() }
}

var _ Instrumentation = (*countingInstrumentation)(nil)

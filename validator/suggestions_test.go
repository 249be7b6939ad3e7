package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilsbr/gqlcore/parser"
	"github.com/nilsbr/gqlcore/schema"
)

func suggestionTestSchema(t *testing.T) *schema.Schema {
	s, err := schema.New(&schema.SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "Query",
			Fields: map[string]*schema.FieldDefinition{
				"widget": {
					Type: schema.NewNonNullType(widgetType),
					Resolve: func(*schema.FieldContext) (interface{}, error) {
						return nil, nil
					},
				},
			},
		},
	})
	require.NoError(t, err)
	return s
}

func TestValidateDocument_UndefinedFragmentTypeSuggestion(t *testing.T) {
	s := suggestionTestSchema(t)
	doc, parseErrs := parser.ParseDocument([]byte(`
		{ widget { ...F } }
		fragment F on Widgt { name }
	`))
	require.Empty(t, parseErrs)
	errs := ValidateDocument(doc, s, nil)
	require.NotEmpty(t, errs)
	assert.True(t, anyMessageContains(errs, `Did you mean "Widget"?`))
}

func TestValidateDocument_UndefinedFragmentSpreadSuggestion(t *testing.T) {
	s := suggestionTestSchema(t)
	doc, parseErrs := parser.ParseDocument([]byte(`
		{ widget { ...Namr } }
		fragment Name on Widget { name }
	`))
	require.Empty(t, parseErrs)
	errs := ValidateDocument(doc, s, nil)
	require.NotEmpty(t, errs)
	assert.True(t, anyMessageContains(errs, `Did you mean "Name"?`))
}

func TestValidateDocument_UndefinedVariableTypeSuggestion(t *testing.T) {
	s := suggestionTestSchema(t)
	doc, parseErrs := parser.ParseDocument([]byte(`
		query ($id: Strng) { widget { name } }
	`))
	require.Empty(t, parseErrs)
	errs := ValidateDocument(doc, s, nil)
	require.NotEmpty(t, errs)
	assert.True(t, anyMessageContains(errs, `Did you mean "String"?`))
}

func anyMessageContains(errs []*Error, substr string) bool {
	for _, err := range errs {
		if strings.Contains(err.Message, substr) {
			return true
		}
	}
	return false
}

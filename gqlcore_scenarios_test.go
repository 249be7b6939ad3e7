package gqlcore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilsbr/gqlcore/schema"
	"github.com/nilsbr/gqlcore/value"
)

// These tests assert the literal end-to-end scenarios spec.md lists as
// testable properties, byte-for-byte where the spec mandates exact
// wording.

func TestScenario_HelloWorld(t *testing.T) {
	s, err := NewSchema(&SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "RootQueryType",
			Fields: map[string]*schema.FieldDefinition{
				"hello": {
					Type: schema.StringType,
					Resolve: func(*schema.FieldContext) (interface{}, error) {
						return "world", nil
					},
				},
			},
		},
	})
	require.NoError(t, err)

	resp := Execute(&Request{Query: `{ hello }`, Schema: s})
	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"hello":"world"}}`, string(body))
}

func TestScenario_BoyHowdy(t *testing.T) {
	s, err := NewSchema(&SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "RootQueryType",
			Fields: map[string]*schema.FieldDefinition{
				"hello": {
					Type: schema.StringType,
					Resolve: func(*schema.FieldContext) (interface{}, error) {
						return "world", nil
					},
				},
			},
		},
	})
	require.NoError(t, err)

	resp := Execute(&Request{Query: `{ boyhowdy }`, Schema: s})
	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":[{"message":"Cannot query field \"boyhowdy\" on type \"RootQueryType\".","locations":[{"line":1,"column":3}]}]}`, string(body))
}

func TestScenario_SayHelloWithVariables(t *testing.T) {
	s, err := NewSchema(&SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "RootQueryType",
			Fields: map[string]*schema.FieldDefinition{
				"hello": {
					Type: schema.StringType,
					Arguments: map[string]*schema.InputValueDefinition{
						"name": {
							Type:         schema.NewNonNullType(schema.StringType),
							DefaultValue: "world",
						},
					},
					Resolve: func(fc *schema.FieldContext) (interface{}, error) {
						return fc.Arguments["name"], nil
					},
				},
			},
		},
	})
	require.NoError(t, err)

	resp := Execute(&Request{
		Query:          `query sayHello($name:String){hello(name:$name)}`,
		Schema:         s,
		VariableValues: map[string]interface{}{"name": "bob"},
	})
	assert.Empty(t, resp.Errors)
	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"hello":"bob"}}`, string(body))
}

func TestScenario_MutationOrder(t *testing.T) {
	var sets []int
	s, err := NewSchema(&SchemaDefinition{
		Query: &schema.ObjectType{
			Name:   "RootQueryType",
			Fields: map[string]*schema.FieldDefinition{"hello": {Type: schema.StringType}},
		},
		Mutation: &schema.ObjectType{
			Name: "RootMutationType",
			Fields: map[string]*schema.FieldDefinition{
				"set": {
					Type: schema.IntType,
					Arguments: map[string]*schema.InputValueDefinition{
						"x": {Type: schema.NewNonNullType(schema.IntType)},
					},
					Resolve: func(fc *schema.FieldContext) (interface{}, error) {
						x := fc.Arguments["x"].(int)
						sets = append(sets, x)
						return x, nil
					},
				},
			},
		},
	})
	require.NoError(t, err)

	resp := Execute(&Request{Query: `mutation { a: set(x:1) b: set(x:2) }`, Schema: s})
	assert.Empty(t, resp.Errors)
	assert.Equal(t, []int{1, 2}, sets)
}

type emailValue struct {
	from string
}

type emailEvent struct {
	email emailValue
}

func TestScenario_ImportantEmailSubscription(t *testing.T) {
	emailType := &schema.ObjectType{
		Name: "Email",
		Fields: map[string]*schema.FieldDefinition{
			"from": {
				Type: schema.StringType,
				Resolve: func(fc *schema.FieldContext) (interface{}, error) {
					return fc.Object.(emailValue).from, nil
				},
			},
		},
	}
	emailEventType := &schema.ObjectType{
		Name: "EmailEvent",
		Fields: map[string]*schema.FieldDefinition{
			"email": {
				Type: emailType,
				Resolve: func(fc *schema.FieldContext) (interface{}, error) {
					return fc.Object.(emailEvent).email, nil
				},
			},
		},
	}

	events := make(chan emailEvent, 2)
	events <- emailEvent{email: emailValue{from: "alice@example.com"}}
	events <- emailEvent{email: emailValue{from: "bob@example.com"}}
	close(events)

	s, err := NewSchema(&SchemaDefinition{
		Query: &schema.ObjectType{
			Name:   "RootQueryType",
			Fields: map[string]*schema.FieldDefinition{"hello": {Type: schema.StringType}},
		},
		Subscription: &schema.ObjectType{
			Name: "RootSubscriptionType",
			Fields: map[string]*schema.FieldDefinition{
				"importantEmail": {
					Type: emailEventType,
					Resolve: func(fc *schema.FieldContext) (interface{}, error) {
						if fc.IsSubscribe {
							return events, nil
						}
						return fc.Object, nil
					},
				},
			},
		},
	})
	require.NoError(t, err)

	var responses []*Response
	err = Graphql(&Request{
		Query:  `subscription { importantEmail { email { from } } }`,
		Schema: s,
	}, func(resp *Response) {
		responses = append(responses, resp)
	})
	require.NoError(t, err)
	require.Len(t, responses, 2)

	for i, resp := range responses {
		assert.Empty(t, resp.Errors)
		m, ok := resp.Data.(*value.Map)
		require.True(t, ok)
		importantEmail, ok := m.Get("importantEmail")
		require.True(t, ok)
		email, ok := importantEmail.(*value.Map).Get("email")
		require.True(t, ok)
		from, ok := email.(*value.Map).Get("from")
		require.True(t, ok)
		if i == 0 {
			assert.Equal(t, "alice@example.com", from)
		} else {
			assert.Equal(t, "bob@example.com", from)
		}
	}
}

func echoObjectType() *schema.ObjectType {
	return &schema.ObjectType{
		Name: "Echo",
		Fields: map[string]*schema.FieldDefinition{
			"field1": {
				Type: schema.StringType,
				Resolve: func(fc *schema.FieldContext) (interface{}, error) {
					v, _ := fc.Object.(map[string]interface{})["field1"]
					return v, nil
				},
			},
			"field2": {
				Type: schema.StringType,
				Resolve: func(fc *schema.FieldContext) (interface{}, error) {
					v, _ := fc.Object.(map[string]interface{})["field2"]
					return v, nil
				},
			},
		},
	}
}

func echoSchema(t *testing.T, field2 *schema.InputValueDefinition) *Schema {
	echoType := echoObjectType()
	s, err := NewSchema(&SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "RootQueryType",
			Fields: map[string]*schema.FieldDefinition{
				"echo": {
					Type: echoType,
					Arguments: map[string]*schema.InputValueDefinition{
						"input": {
							Type: schema.NewNonNullType(&schema.InputObjectType{
								Name: "EchoInput",
								Fields: map[string]*schema.InputValueDefinition{
									"field1": {Type: schema.StringType},
									"field2": field2,
								},
							}),
						},
					},
					Resolve: func(fc *schema.FieldContext) (interface{}, error) {
						return fc.Arguments["input"], nil
					},
				},
			},
		},
	})
	require.NoError(t, err)
	return s
}

func TestScenario_EchoInputObjectDefaults(t *testing.T) {
	t.Run("explicit null", func(t *testing.T) {
		s := echoSchema(t, &schema.InputValueDefinition{Type: schema.StringType})
		resp := Execute(&Request{
			Query:  `{ echo(input:{field1:"v1", field2:null}) { field1 field2 } }`,
			Schema: s,
		})
		assert.Empty(t, resp.Errors)
		body, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":{"echo":{"field1":"v1","field2":null}}}`, string(body))
	})

	t.Run("default value", func(t *testing.T) {
		s := echoSchema(t, &schema.InputValueDefinition{Type: schema.StringType, DefaultValue: "v2"})
		resp := Execute(&Request{
			Query:  `{ echo(input:{field1:"v1"}) { field1 field2 } }`,
			Schema: s,
		})
		assert.Empty(t, resp.Errors)
		body, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":{"echo":{"field1":"v1","field2":"v2"}}}`, string(body))
	})

	t.Run("non-null without default rejects explicit null", func(t *testing.T) {
		s := echoSchema(t, &schema.InputValueDefinition{Type: schema.NewNonNullType(schema.StringType)})
		resp := Execute(&Request{
			Query:  `{ echo(input:{field1:"v1", field2:null}) { field1 field2 } }`,
			Schema: s,
		})
		assert.Nil(t, resp.Data)
		require.NotEmpty(t, resp.Errors)
	})
}

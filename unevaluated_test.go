package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnevaluatedPropertiesRejectsExtras(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/uneval-props", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"properties": {"name": {"type": "string"}},
		"unevaluatedProperties": false
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/uneval-props", `{"name":"a"}`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/uneval-props", `{"name":"a","extra":1}`).Valid)
}

func TestUnevaluatedPropertiesSeesIfThenAnnotations(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/uneval-if", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"if": {"properties": {"kind": {"const": "a"}}},
		"then": {"properties": {"a_only": {"type": "string"}}},
		"unevaluatedProperties": false
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/uneval-if", `{"kind":"a","a_only":"x"}`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/uneval-if", `{"kind":"a","a_only":"x","other":1}`).Valid)
}

func TestUnevaluatedItemsRejectsExtras(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/uneval-items", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"prefixItems": [{"type": "string"}, {"type": "number"}],
		"unevaluatedItems": false
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/uneval-items", `["a",1]`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/uneval-items", `["a",1,"extra"]`).Valid)
}

func TestDependentRequiredEnforcesCoPresence(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/dep-req", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"dependentRequired": {"creditCard": ["billingAddress"]}
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/dep-req", `{}`).Valid)
	assert.True(t, mustValidate(t, v, "https://example.com/dep-req", `{"creditCard":"1234","billingAddress":"x"}`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/dep-req", `{"creditCard":"1234"}`).Valid)
}

func TestDependentSchemasAppliesConditionalSubschema(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/dep-schemas", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"dependentSchemas": {
			"creditCard": {
				"required": ["billingAddress"]
			}
		}
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/dep-schemas", `{}`).Valid)
	assert.True(t, mustValidate(t, v, "https://example.com/dep-schemas", `{"creditCard":"1234","billingAddress":"x"}`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/dep-schemas", `{"creditCard":"1234"}`).Valid)
}

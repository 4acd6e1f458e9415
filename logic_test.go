package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustValidator(t *testing.T) *Validator {
	t.Helper()
	return NewValidator(Options{})
}

func mustValidate(t *testing.T, v *Validator, uri, instanceJSON string) Result {
	t.Helper()
	result, err := v.ValidateBytes(uri, []byte(instanceJSON))
	require.NoError(t, err)
	return result
}

func TestAllOfEvaluatesEveryBranch(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/allof", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"allOf": [
			{"type": "integer"},
			{"minimum": 0}
		]
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/allof", `5`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/allof", `-5`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/allof", `5.5`).Valid)
}

func TestOneOfRejectsMultipleMatches(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/oneof", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"oneOf": [
			{"type": "number", "multipleOf": 3},
			{"type": "number", "multipleOf": 5}
		]
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/oneof", `3`).Valid)
	assert.True(t, mustValidate(t, v, "https://example.com/oneof", `5`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/oneof", `15`).Valid, "15 matches both branches")
	assert.False(t, mustValidate(t, v, "https://example.com/oneof", `7`).Valid, "7 matches neither branch")
}

func TestConditionalIfThenElse(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/cond", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"if": {"properties": {"country": {"const": "US"}}},
		"then": {"required": ["zip"]},
		"else": {"required": ["postalCode"]}
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/cond", `{"country":"US","zip":"10001"}`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/cond", `{"country":"US"}`).Valid)
	assert.True(t, mustValidate(t, v, "https://example.com/cond", `{"country":"CA","postalCode":"K1A"}`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/cond", `{"country":"CA"}`).Valid)
}

func TestAllOfBranchAnnotationsFeedUnevaluatedProperties(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/allof-unevaluated", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"allOf": [
			{"properties": {"a": {"type": "string"}}}
		],
		"properties": {"b": {"type": "string"}},
		"unevaluatedProperties": false
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/allof-unevaluated", `{"a":"x","b":"y"}`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/allof-unevaluated", `{"a":"x","b":"y","c":"z"}`).Valid)
}

func TestNotRejectsMatchingInstance(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/not", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"not": {"type": "string"}
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/not", `5`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/not", `"five"`).Valid)
}

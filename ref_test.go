package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefResolvesSiblingDefinition(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/ref", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$defs": {
			"positive": {"type": "number", "exclusiveMinimum": 0}
		},
		"properties": {
			"amount": {"$ref": "#/$defs/positive"}
		}
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/ref", `{"amount":1}`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/ref", `{"amount":-1}`).Valid)
}

func TestRefUnresolvableFails(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/badref", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$ref": "https://example.com/does-not-exist"
	}`)))

	result := mustValidate(t, v, "https://example.com/badref", `{}`)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "$ref", result.Errors[0].Keyword)
}

func TestDynamicRefWalksOutermostAnchor(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/list", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/list",
		"$dynamicAnchor": "items",
		"type": "array",
		"items": {"$dynamicRef": "#items"}
	}`)))
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/strict-list", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/strict-list",
		"$ref": "https://example.com/list",
		"$defs": {
			"override": {
				"$dynamicAnchor": "items",
				"type": "string"
			}
		}
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/strict-list", `["a","b"]`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/strict-list", `[1,2]`).Valid)
}

func TestInfiniteRefLoopIsDetected(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/loop", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/loop",
		"$ref": "#"
	}`)))

	result := mustValidate(t, v, "https://example.com/loop", `{}`)
	assert.False(t, result.Valid)
}

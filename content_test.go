package jsonschema

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentMediaTypeValidatesDecodedJSON(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/content", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "string",
		"contentMediaType": "application/json",
		"contentSchema": {"type": "object", "required": ["name"]}
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/content", `"{\"name\":\"a\"}"`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/content", `"{\"other\":1}"`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/content", `"not json at all {{{"`).Valid)
}

func TestContentEncodingDecodesBeforeMediaType(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/content-b64", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "string",
		"contentEncoding": "base64",
		"contentMediaType": "application/json",
		"contentSchema": {"type": "array"}
	}`)))

	payload := base64.StdEncoding.EncodeToString([]byte(`[1,2,3]`))
	assert.True(t, mustValidate(t, v, "https://example.com/content-b64", `"`+payload+`"`).Valid)

	badPayload := base64.StdEncoding.EncodeToString([]byte(`{"not":"array"}`))
	assert.False(t, mustValidate(t, v, "https://example.com/content-b64", `"`+badPayload+`"`).Valid)

	assert.False(t, mustValidate(t, v, "https://example.com/content-b64", `"not-base64!!"`).Valid)
}

func TestContentEncodingAloneDoesNotRequireParsing(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/content-enc-only", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "string",
		"contentEncoding": "base64"
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/content-enc-only", `"aGVsbG8="`).Valid)
}

package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatIsAnnotationByDefault(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/fmt-annotation", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"format": "email"
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/fmt-annotation", `"not-an-email"`).Valid,
		"format is an annotation, not an assertion, without AssertFormat")
}

func TestFormatAssertsWhenEnabled(t *testing.T) {
	v := NewValidator(Options{AssertFormat: true})
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/fmt-assertion", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"format": "email"
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/fmt-assertion", `"a@example.com"`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/fmt-assertion", `"not-an-email"`).Valid)
}

func TestFormatCheckers(t *testing.T) {
	tests := []struct {
		format string
		value  string
		valid  bool
	}{
		{"date-time", "2023-06-15T10:30:00Z", true},
		{"date-time", "not-a-date", false},
		{"date", "2023-06-15", true},
		{"date", "2023-13-15", false},
		{"ipv4", "192.168.1.1", true},
		{"ipv4", "999.999.999.999", false},
		{"ipv6", "::1", true},
		{"ipv6", "not-an-ipv6", false},
		{"uuid", "550e8400-e29b-41d4-a716-446655440000", true},
		{"uuid", "not-a-uuid", false},
		{"hostname", "example.com", true},
		{"hostname", "-bad-.com", false},
		{"idn-hostname", "例え.jp", true},
		{"uri", "https://example.com/path", true},
		{"uri", "not a uri", false},
		{"regex", "^[a-z]+$", true},
		{"regex", "[unterminated", false},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.value, func(t *testing.T) {
			fn, ok := Formats[tt.format]
			require.True(t, ok, "no checker registered for format %q", tt.format)
			assert.Equal(t, tt.valid, fn(tt.value))
		})
	}
}

func TestUnknownFormatNeverAsserts(t *testing.T) {
	v := NewValidator(Options{AssertFormat: true})
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/fmt-unknown", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"format": "x-totally-made-up"
	}`)))

	assert.True(t, mustValidate(t, v, "https://example.com/fmt-unknown", `"anything"`).Valid)
}

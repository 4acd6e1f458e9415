package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSchemaRejectsInvalidAgainstMetaSchema(t *testing.T) {
	v := mustValidator(t)

	err := v.RegisterSchemaFromBytes("https://example.com/bad-meta", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "not-a-real-type"
	}`))
	require.Error(t, err)

	var invalidSchema *InvalidSchemaException
	assert.ErrorAs(t, err, &invalidSchema)

	_, validateErr := v.ValidateBytes("https://example.com/bad-meta", []byte(`{}`))
	assert.Error(t, validateErr, "failed registration must not leave a partial schema behind")
}

func TestRegisterSchemaRollsBackOnCompilationFailure(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/good", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "string"
	}`)))

	err := v.RegisterSchemaFromBytes("https://example.com/bad-pattern", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"pattern": "[unterminated"
	}`))
	require.Error(t, err)

	assert.True(t, mustValidate(t, v, "https://example.com/good", `"still works"`).Valid)
}

func TestValidateUnknownURIReturnsSchemaNotFound(t *testing.T) {
	v := mustValidator(t)
	_, err := v.ValidateBytes("https://example.com/never-registered", []byte(`{}`))
	require.Error(t, err)
	var notFound *SchemaNotFoundException
	assert.ErrorAs(t, err, &notFound)
}

func TestRegisterAliasSharesCompiledSchemaReadOnly(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/orig", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "integer"
	}`)))
	require.NoError(t, v.RegisterAlias("https://example.com/orig", "https://example.com/alias"))

	assert.True(t, mustValidate(t, v, "https://example.com/alias", `5`).Valid)
	assert.False(t, mustValidate(t, v, "https://example.com/alias", `"five"`).Valid)
}

func TestFormatReportRendersErrors(t *testing.T) {
	v := mustValidator(t)
	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/report", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"required": ["name"]
	}`)))

	result := mustValidate(t, v, "https://example.com/report", `{}`)
	report := FormatReport(result)
	assert.Contains(t, report, "required")
}

func TestDisableSchemaValidationSkipsMetaSchemaCheck(t *testing.T) {
	v := NewValidator(Options{DisableSchemaValidation: true})

	err := v.RegisterSchemaFromBytes("https://example.com/skip-meta", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "not-a-real-type"
	}`))
	require.NoError(t, err, "meta-schema validation must be skipped when DisableSchemaValidation is set")
}

// alwaysIntegerEvaluator ignores the declared `type` value entirely and
// requires every instance to be an integer.
type alwaysIntegerEvaluator struct{}

func (alwaysIntegerEvaluator) Keyword() string { return "type" }

func (alwaysIntegerEvaluator) Evaluate(_ *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeNumber || !instance.IsInteger() {
		return Fail("value must be an integer")
	}
	return Pass(nil)
}

// alwaysIntegerFactory shadows the `type` keyword so every schema declaring
// it actually requires an integer instance, regardless of the declared type.
type alwaysIntegerFactory struct{}

func (alwaysIntegerFactory) Create(_ *parseContext, keyword string, _ JsonNode, _ JsonNode) (Evaluator, bool, error) {
	if keyword != "type" {
		return nil, false, nil
	}
	return alwaysIntegerEvaluator{}, true, nil
}

func TestCustomEvaluatorFactoryShadowsKeyword(t *testing.T) {
	v := NewValidator(Options{EvaluatorFactory: alwaysIntegerFactory{}})

	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/custom-factory", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "string"
	}`)))

	assert.False(t, mustValidate(t, v, "https://example.com/custom-factory", `"hello"`).Valid,
		"custom factory should have shadowed `type` to require an integer")
	assert.True(t, mustValidate(t, v, "https://example.com/custom-factory", `5`).Valid)
}

func TestCustomFormatIsHonored(t *testing.T) {
	v := mustValidator(t)
	v.RegisterFormat("even-digits", func(s string) bool { return len(s)%2 == 0 })
	v.RegisterFormat("placeholder-noop", func(s string) bool { return true })

	require.NoError(t, v.RegisterSchemaFromBytes("https://example.com/custom-fmt", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"format": "even-digits"
	}`)))

	av := NewValidator(Options{AssertFormat: true})
	av.RegisterFormat("even-digits", func(s string) bool { return len(s)%2 == 0 })
	require.NoError(t, av.RegisterSchemaFromBytes("https://example.com/custom-fmt", []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"format": "even-digits"
	}`)))

	assert.True(t, mustValidate(t, av, "https://example.com/custom-fmt", `"ab"`).Valid)
	assert.False(t, mustValidate(t, av, "https://example.com/custom-fmt", `"abc"`).Valid)
}

package jsonschema

import "fmt"

type formatEvaluator struct {
	name     string
	validate func(string) bool // nil when the format name is unrecognized
}

// newFormatEvaluator compiles the `format` keyword. Whether an unmatched
// format rejects the instance depends on the format-assertion vocabulary,
// decided per Validate call via EvaluationContext.assertFormat rather than
// here, since the same compiled schema can be evaluated under either mode.
func newFormatEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	if member.Type() != NodeString {
		return nil, fmt.Errorf("%w: format must be a string", ErrSchemaCompilation)
	}
	name := member.StringValue()
	validate := pctx.formats[name]
	return &formatEvaluator{name: name, validate: validate}, nil
}

func (e *formatEvaluator) Keyword() string { return "format" }

func (e *formatEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeString {
		return Pass(e.name)
	}
	if e.validate == nil {
		// Unknown format names are never asserted, even under assertFormat.
		return Pass(e.name)
	}
	if !e.validate(instance.StringValue()) {
		if ctx.assertFormat {
			return Fail(fmt.Sprintf("value does not match format %q", e.name))
		}
	}
	return Pass(e.name)
}

package jsonschema

type constEvaluator struct {
	value JsonNode
}

// newConstEvaluator compiles the `const` keyword: the instance must equal
// value exactly (mathematical equality for numbers, structural for
// containers).
func newConstEvaluator(member JsonNode) (Evaluator, error) {
	return &constEvaluator{value: member}, nil
}

func (e *constEvaluator) Keyword() string { return "const" }

func (e *constEvaluator) Evaluate(_ *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	if instance.Equals(e.value) {
		return Pass(nil)
	}
	return Fail("value does not match the constant value")
}

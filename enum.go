package jsonschema

import "fmt"

type enumEvaluator struct {
	values []JsonNode
}

// newEnumEvaluator compiles the `enum` keyword: the instance must equal one
// of the listed values.
func newEnumEvaluator(member JsonNode) (Evaluator, error) {
	if member.Type() != NodeArray || len(member.ArrayValues()) == 0 {
		return nil, fmt.Errorf("%w: enum must be a non-empty array", ErrSchemaCompilation)
	}
	return &enumEvaluator{values: member.ArrayValues()}, nil
}

func (e *enumEvaluator) Keyword() string { return "enum" }

func (e *enumEvaluator) Evaluate(_ *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	for _, v := range e.values {
		if instance.Equals(v) {
			return Pass(nil)
		}
	}
	return Fail("value should match one of the values specified by the enum")
}

package jsonschema

import "fmt"

type propertyNamesEvaluator struct {
	schema *Schema
}

// newPropertyNamesEvaluator compiles the `propertyNames` keyword: every
// property name of an object instance, treated as a string instance, must
// validate against the subschema.
func newPropertyNamesEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	compiled, err := parseSubschema(pctx, member)
	if err != nil {
		return nil, err
	}
	return &propertyNamesEvaluator{schema: compiled}, nil
}

func (e *propertyNamesEvaluator) Keyword() string { return "propertyNames" }

func (e *propertyNamesEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeObject {
		return Pass(nil)
	}
	var invalid []string
	for _, name := range instance.ObjectKeys() {
		nameNode, err := NewNodeFactory().FromValue(name)
		if err != nil {
			continue
		}
		b := newResultBuilder()
		if !e.schema.Evaluate(ctx, nameNode, b) {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		return Fail(fmt.Sprintf("property names %v do not match the schema", invalid))
	}
	return Pass(nil)
}

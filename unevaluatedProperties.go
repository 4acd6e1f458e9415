package jsonschema

import "fmt"

type unevaluatedPropertiesEvaluator struct {
	schema *Schema
}

// newUnevaluatedPropertiesEvaluator compiles `unevaluatedProperties`. It
// runs last among the object keywords so scope.EvaluatedProps already
// reflects every sibling properties/patternProperties/additionalProperties
// annotation, plus anything folded in from allOf/anyOf/oneOf/if branches.
func newUnevaluatedPropertiesEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	compiled, err := parseSubschema(pctx, member)
	if err != nil {
		return nil, err
	}
	return &unevaluatedPropertiesEvaluator{schema: compiled}, nil
}

func (e *unevaluatedPropertiesEvaluator) Keyword() string { return "unevaluatedProperties" }

func (e *unevaluatedPropertiesEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeObject {
		return Pass(nil)
	}
	var invalid []string
	var matched []string
	for _, name := range instance.ObjectKeys() {
		if scope.EvaluatedProps[name] {
			continue
		}
		value, _ := instance.ObjectValue(name)
		matched = append(matched, name)
		b := newResultBuilder()
		if !e.schema.Evaluate(ctx, value, b) {
			invalid = append(invalid, name)
		}
	}
	scope.MergeProps(matched...)
	if len(invalid) > 0 {
		return Fail(fmt.Sprintf("unevaluated properties %v do not match the schema", invalid))
	}
	return Pass(matched)
}

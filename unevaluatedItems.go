package jsonschema

import "fmt"

type unevaluatedItemsEvaluator struct {
	schema *Schema
}

// newUnevaluatedItemsEvaluator compiles `unevaluatedItems`. It runs last
// among the array keywords (see keywordPriority) so scope.EvaluatedItems and
// scope.AllItemsEvaluated already reflect every sibling items/prefixItems/
// contains annotation, plus anything folded in from allOf/anyOf/oneOf/if
// branches.
func newUnevaluatedItemsEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	compiled, err := parseSubschema(pctx, member)
	if err != nil {
		return nil, err
	}
	return &unevaluatedItemsEvaluator{schema: compiled}, nil
}

func (e *unevaluatedItemsEvaluator) Keyword() string { return "unevaluatedItems" }

func (e *unevaluatedItemsEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeArray {
		return Pass(nil)
	}
	if scope.AllItemsEvaluated {
		return Pass(nil)
	}
	items := instance.ArrayValues()
	var invalid []int
	touchedAny := false
	for i, item := range items {
		if scope.EvaluatedItems[i] {
			continue
		}
		touchedAny = true
		b := newResultBuilder()
		if e.schema.Evaluate(ctx, item, b) {
			scope.MergeItems(i)
		} else {
			invalid = append(invalid, i)
		}
	}
	if len(invalid) > 0 {
		return Fail(fmt.Sprintf("unevaluated items at index %v do not match the schema", invalid))
	}
	if touchedAny {
		scope.AllItemsEvaluated = true
		return Pass(true)
	}
	return Pass(nil)
}

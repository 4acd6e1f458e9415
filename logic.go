package jsonschema

import "fmt"

type allOfEvaluator struct {
	schemas []*Schema
}

// newAllOfEvaluator compiles `allOf`: every branch must validate; every
// branch runs regardless of earlier failures so annotations accumulate.
func newAllOfEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	schemas, err := parseSchemaArray(pctx, member, "allOf")
	if err != nil {
		return nil, err
	}
	return &allOfEvaluator{schemas: schemas}, nil
}

func (e *allOfEvaluator) Keyword() string { return "allOf" }

func (e *allOfEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	var failedIdx []int
	for i, sub := range e.schemas {
		b := newResultBuilder()
		if sub.Evaluate(ctx, instance, b) {
			mergeAnnotationsIntoScope(b, scope)
		} else {
			failedIdx = append(failedIdx, i)
		}
	}
	if len(failedIdx) > 0 {
		return Fail(fmt.Sprintf("value does not match the allOf schema at index %v", failedIdx))
	}
	return Pass(nil)
}

type anyOfEvaluator struct {
	schemas []*Schema
}

// newAnyOfEvaluator compiles `anyOf`: at least one branch must validate,
// but every branch still runs so its annotations can contribute.
func newAnyOfEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	schemas, err := parseSchemaArray(pctx, member, "anyOf")
	if err != nil {
		return nil, err
	}
	return &anyOfEvaluator{schemas: schemas}, nil
}

func (e *anyOfEvaluator) Keyword() string { return "anyOf" }

func (e *anyOfEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	valid := false
	for _, sub := range e.schemas {
		b := newResultBuilder()
		if sub.Evaluate(ctx, instance, b) {
			valid = true
			mergeAnnotationsIntoScope(b, scope)
		}
	}
	if !valid {
		return Fail("value does not match any anyOf schema")
	}
	return Pass(nil)
}

type oneOfEvaluator struct {
	schemas []*Schema
}

// newOneOfEvaluator compiles `oneOf`: exactly one branch must validate.
// Every branch still runs (no short-circuiting) to verify uniqueness.
func newOneOfEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	schemas, err := parseSchemaArray(pctx, member, "oneOf")
	if err != nil {
		return nil, err
	}
	return &oneOfEvaluator{schemas: schemas}, nil
}

func (e *oneOfEvaluator) Keyword() string { return "oneOf" }

func (e *oneOfEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	var matched []int
	var matchedBuilder *resultBuilder
	for i, sub := range e.schemas {
		b := newResultBuilder()
		if sub.Evaluate(ctx, instance, b) {
			matched = append(matched, i)
			matchedBuilder = b
		}
	}
	switch len(matched) {
	case 1:
		mergeAnnotationsIntoScope(matchedBuilder, scope)
		return Pass(nil)
	case 0:
		return Fail("value does not match any oneOf schema")
	default:
		return Fail(fmt.Sprintf("value matches multiple oneOf schemas at indexes %v", matched))
	}
}

type notEvaluator struct {
	schema *Schema
}

// newNotEvaluator compiles `not`: the instance must fail the subschema.
func newNotEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	compiled, err := parseSubschema(pctx, member)
	if err != nil {
		return nil, err
	}
	return &notEvaluator{schema: compiled}, nil
}

func (e *notEvaluator) Keyword() string { return "not" }

func (e *notEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	b := newResultBuilder()
	if e.schema.Evaluate(ctx, instance, b) {
		return Fail("value should not match the not schema")
	}
	return Pass(nil)
}

type conditionalEvaluator struct {
	ifSchema   *Schema
	thenSchema *Schema
	elseSchema *Schema
}

// newConditionalEvaluator compiles the `if`/`then`/`else` triad together,
// since `then`/`else` only take effect relative to `if`'s outcome.
func newConditionalEvaluator(pctx *parseContext, schemaNode JsonNode) (Evaluator, error) {
	ifMember, ok := schemaNode.ObjectValue("if")
	if !ok {
		return nil, nil
	}
	ifSchema, err := parseSubschema(pctx, ifMember)
	if err != nil {
		return nil, err
	}
	var thenSchema, elseSchema *Schema
	if thenMember, ok := schemaNode.ObjectValue("then"); ok {
		thenSchema, err = parseSubschema(pctx, thenMember)
		if err != nil {
			return nil, err
		}
	}
	if elseMember, ok := schemaNode.ObjectValue("else"); ok {
		elseSchema, err = parseSubschema(pctx, elseMember)
		if err != nil {
			return nil, err
		}
	}
	return &conditionalEvaluator{ifSchema: ifSchema, thenSchema: thenSchema, elseSchema: elseSchema}, nil
}

func (e *conditionalEvaluator) Keyword() string { return "if" }

func (e *conditionalEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	ifBuilder := newResultBuilder()
	ifValid := e.ifSchema.Evaluate(ctx, instance, ifBuilder)

	if ifValid {
		mergeAnnotationsIntoScope(ifBuilder, scope)
		if e.thenSchema == nil {
			return Pass(nil)
		}
		b := newResultBuilder()
		if !e.thenSchema.Evaluate(ctx, instance, b) {
			return Fail("value meets the if condition but does not match the then schema")
		}
		mergeAnnotationsIntoScope(b, scope)
		return Pass(nil)
	}

	if e.elseSchema == nil {
		return Pass(nil)
	}
	b := newResultBuilder()
	if !e.elseSchema.Evaluate(ctx, instance, b) {
		return Fail("value fails the if condition and does not match the else schema")
	}
	mergeAnnotationsIntoScope(b, scope)
	return Pass(nil)
}

func parseSchemaArray(pctx *parseContext, member JsonNode, keyword string) ([]*Schema, error) {
	if member.Type() != NodeArray || len(member.ArrayValues()) == 0 {
		return nil, fmt.Errorf("%w: %s must be a non-empty array", ErrSchemaCompilation, keyword)
	}
	schemas := make([]*Schema, 0, len(member.ArrayValues()))
	for _, sub := range member.ArrayValues() {
		compiled, err := parseSubschema(pctx, sub)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, compiled)
	}
	return schemas, nil
}

// mergeAnnotationsIntoScope folds a branch evaluation's property/item
// annotations into the parent scope, so `unevaluated*` at the enclosing
// schema sees names/indices matched inside allOf/anyOf/oneOf/if branches.
func mergeAnnotationsIntoScope(b *resultBuilder, scope *EvalScope) {
	for _, a := range b.annotations {
		switch a.Keyword {
		case "properties", "patternProperties", "additionalProperties", "unevaluatedProperties":
			if names, ok := a.Value.([]string); ok {
				scope.MergeProps(names...)
			}
		case "items", "prefixItems", "contains", "unevaluatedItems":
			switch v := a.Value.(type) {
			case []int:
				scope.MergeItems(v...)
			case bool:
				if v {
					scope.AllItemsEvaluated = true
				}
			}
		}
	}
}

package jsonschema

import "fmt"

type itemsEvaluator struct {
	schema     *Schema
	startIndex int
}

// newItemsEvaluator compiles the `items` keyword: a subschema applied to
// every array element at or after the prefixItems count (0 if prefixItems
// is absent).
func newItemsEvaluator(pctx *parseContext, member JsonNode, schemaNode JsonNode) (Evaluator, error) {
	compiled, err := parseSubschema(pctx, member)
	if err != nil {
		return nil, err
	}
	startIndex := 0
	if prefixNode, ok := schemaNode.ObjectValue("prefixItems"); ok && prefixNode.Type() == NodeArray {
		startIndex = len(prefixNode.ArrayValues())
	}
	return &itemsEvaluator{schema: compiled, startIndex: startIndex}, nil
}

func (e *itemsEvaluator) Keyword() string { return "items" }

func (e *itemsEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeArray {
		return Pass(nil)
	}
	items := instance.ArrayValues()
	var invalid []int
	touchedAny := false
	for i := e.startIndex; i < len(items); i++ {
		touchedAny = true
		b := newResultBuilder()
		if e.schema.Evaluate(ctx, items[i], b) {
			scope.MergeItems(i)
		} else {
			invalid = append(invalid, i)
		}
	}
	if touchedAny {
		scope.AllItemsEvaluated = true
	}
	if len(invalid) > 0 {
		return Fail(fmt.Sprintf("items at index %v do not match the schema", invalid))
	}
	return Pass(true)
}

type prefixItemsEvaluator struct {
	schemas []*Schema
}

// newPrefixItemsEvaluator compiles the `prefixItems` keyword: a positional
// list of subschemas applied to the array's first N elements.
func newPrefixItemsEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	if member.Type() != NodeArray {
		return nil, fmt.Errorf("%w: prefixItems must be an array", ErrSchemaCompilation)
	}
	schemas := make([]*Schema, 0, len(member.ArrayValues()))
	for _, sub := range member.ArrayValues() {
		compiled, err := parseSubschema(pctx, sub)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, compiled)
	}
	return &prefixItemsEvaluator{schemas: schemas}, nil
}

func (e *prefixItemsEvaluator) Keyword() string { return "prefixItems" }

func (e *prefixItemsEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeArray {
		return Pass(nil)
	}
	items := instance.ArrayValues()
	var invalid []int
	var evaluated []int
	for i, sub := range e.schemas {
		if i >= len(items) {
			break
		}
		b := newResultBuilder()
		if sub.Evaluate(ctx, items[i], b) {
			scope.MergeItems(i)
			evaluated = append(evaluated, i)
		} else {
			invalid = append(invalid, i)
		}
	}
	if len(invalid) > 0 {
		return Fail(fmt.Sprintf("items at index %v do not match the prefixItems schemas", invalid))
	}
	return Pass(evaluated)
}

type containsEvaluator struct {
	schema      *Schema
	minContains int
	maxContains *int
}

// newContainsEvaluator compiles the `contains` keyword together with its
// sibling minContains/maxContains bounds.
func newContainsEvaluator(pctx *parseContext, member JsonNode, schemaNode JsonNode) (Evaluator, error) {
	compiled, err := parseSubschema(pctx, member)
	if err != nil {
		return nil, err
	}
	minContains := 1
	if minNode, ok := schemaNode.ObjectValue("minContains"); ok {
		n, err := requireNonNegativeInt(minNode, "minContains")
		if err != nil {
			return nil, err
		}
		minContains = n
	}
	var maxContains *int
	if maxNode, ok := schemaNode.ObjectValue("maxContains"); ok {
		n, err := requireNonNegativeInt(maxNode, "maxContains")
		if err != nil {
			return nil, err
		}
		maxContains = &n
	}
	return &containsEvaluator{schema: compiled, minContains: minContains, maxContains: maxContains}, nil
}

func (e *containsEvaluator) Keyword() string { return "contains" }

func (e *containsEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeArray {
		return Pass(nil)
	}
	items := instance.ArrayValues()
	var matched []int
	for i, item := range items {
		b := newResultBuilder()
		if e.schema.Evaluate(ctx, item, b) {
			matched = append(matched, i)
		}
	}
	scope.MergeItems(matched...)

	if len(matched) < e.minContains {
		return Fail(fmt.Sprintf("array should contain at least %d matching items, found %d", e.minContains, len(matched)))
	}
	if e.maxContains != nil && len(matched) > *e.maxContains {
		return Fail(fmt.Sprintf("array should contain at most %d matching items, found %d", *e.maxContains, len(matched)))
	}
	return Pass(matched)
}

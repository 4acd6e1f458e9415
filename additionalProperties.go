package jsonschema

import "fmt"

type additionalPropertiesEvaluator struct {
	schema           *Schema
	declaredNames    map[string]bool
	patterns         []patternPropertySchema
}

// newAdditionalPropertiesEvaluator compiles the `additionalProperties`
// keyword. It needs the sibling `properties`/`patternProperties` keyword
// members (read straight from schemaNode rather than threaded state) to
// know which property names are already spoken for.
func newAdditionalPropertiesEvaluator(pctx *parseContext, member JsonNode, schemaNode JsonNode) (Evaluator, error) {
	compiled, err := parseSubschema(pctx, member)
	if err != nil {
		return nil, err
	}
	declared := make(map[string]bool)
	if propsNode, ok := schemaNode.ObjectValue("properties"); ok && propsNode.Type() == NodeObject {
		for _, name := range propsNode.ObjectKeys() {
			declared[name] = true
		}
	}
	var patterns []patternPropertySchema
	if patternPropsNode, ok := schemaNode.ObjectValue("patternProperties"); ok && patternPropsNode.Type() == NodeObject {
		ev, err := newPatternPropertiesEvaluator(pctx, patternPropsNode)
		if err != nil {
			return nil, err
		}
		patterns = ev.(*patternPropertiesEvaluator).patterns
	}
	return &additionalPropertiesEvaluator{schema: compiled, declaredNames: declared, patterns: patterns}, nil
}

func (e *additionalPropertiesEvaluator) Keyword() string { return "additionalProperties" }

func (e *additionalPropertiesEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeObject {
		return Pass(nil)
	}
	var invalid []string
	var matched []string
	for _, name := range instance.ObjectKeys() {
		if e.declaredNames[name] {
			continue
		}
		if e.matchesPattern(name) {
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
		return Fail(fmt.Sprintf("additional properties %v do not match the schema", invalid))
	}
	return Pass(matched)
}

func (e *additionalPropertiesEvaluator) matchesPattern(name string) bool {
	for _, p := range e.patterns {
		if p.re.MatchString(name) {
			return true
		}
	}
	return false
}

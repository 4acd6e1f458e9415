package jsonschema

import (
	"fmt"
	"regexp"
)

type patternPropertySchema struct {
	re     *regexp.Regexp
	schema *Schema
}

type patternPropertiesEvaluator struct {
	patterns []patternPropertySchema
}

// newPatternPropertiesEvaluator compiles the `patternProperties` keyword:
// an object mapping regex pattern to subschema.
func newPatternPropertiesEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	if member.Type() != NodeObject {
		return nil, fmt.Errorf("%w: patternProperties must be an object", ErrSchemaCompilation)
	}
	patterns := make([]patternPropertySchema, 0, len(member.ObjectKeys()))
	for _, pattern := range member.ObjectKeys() {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRegexValidation, err)
		}
		sub, _ := member.ObjectValue(pattern)
		compiled, err := parseSubschema(pctx, sub)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, patternPropertySchema{re: re, schema: compiled})
	}
	return &patternPropertiesEvaluator{patterns: patterns}, nil
}

func (e *patternPropertiesEvaluator) Keyword() string { return "patternProperties" }

func (e *patternPropertiesEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeObject {
		return Pass(nil)
	}
	var invalid []string
	var matched []string
	for _, name := range instance.ObjectKeys() {
		value, _ := instance.ObjectValue(name)
		for _, p := range e.patterns {
			if !p.re.MatchString(name) {
				continue
			}
			matched = append(matched, name)
			b := newResultBuilder()
			if !p.schema.Evaluate(ctx, value, b) {
				invalid = append(invalid, name)
			}
		}
	}
	scope.MergeProps(matched...)
	if len(invalid) > 0 {
		return Fail(fmt.Sprintf("properties %v do not match their pattern schemas", invalid))
	}
	return Pass(matched)
}

package jsonschema

import "fmt"

type propertiesEvaluator struct {
	schemas map[string]*Schema
}

// newPropertiesEvaluator compiles the `properties` keyword: an object
// mapping property name to subschema.
func newPropertiesEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	if member.Type() != NodeObject {
		return nil, fmt.Errorf("%w: properties must be an object", ErrSchemaCompilation)
	}
	schemas := make(map[string]*Schema, len(member.ObjectKeys()))
	for _, name := range member.ObjectKeys() {
		sub, _ := member.ObjectValue(name)
		compiled, err := parseSubschema(pctx, sub)
		if err != nil {
			return nil, err
		}
		schemas[name] = compiled
	}
	return &propertiesEvaluator{schemas: schemas}, nil
}

func (e *propertiesEvaluator) Keyword() string { return "properties" }

func (e *propertiesEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeObject {
		return Pass(nil)
	}
	var invalid []string
	var matched []string
	for name, sub := range e.schemas {
		value, exists := instance.ObjectValue(name)
		if !exists {
			continue
		}
		matched = append(matched, name)
		b := newResultBuilder()
		if !sub.Evaluate(ctx, value, b) {
			invalid = append(invalid, name)
		}
	}
	scope.MergeProps(matched...)
	if len(invalid) > 0 {
		return Fail(fmt.Sprintf("properties %v do not match their schemas", invalid))
	}
	return Pass(matched)
}

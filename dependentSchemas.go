package jsonschema

import "fmt"

type dependentSchemasEvaluator struct {
	schemas map[string]*Schema
}

// newDependentSchemasEvaluator compiles `dependentSchemas`: when a named
// property is present, the whole instance must also validate against the
// associated subschema.
func newDependentSchemasEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	if member.Type() != NodeObject {
		return nil, fmt.Errorf("%w: dependentSchemas must be an object", ErrSchemaCompilation)
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
	return &dependentSchemasEvaluator{schemas: schemas}, nil
}

func (e *dependentSchemasEvaluator) Keyword() string { return "dependentSchemas" }

func (e *dependentSchemasEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeObject {
		return Pass(nil)
	}
	var invalid []string
	for propName, sub := range e.schemas {
		if _, exists := instance.ObjectValue(propName); !exists {
			continue
		}
		b := newResultBuilder()
		if sub.Evaluate(ctx, instance, b) {
			mergeAnnotationsIntoScope(b, scope)
		} else {
			invalid = append(invalid, propName)
		}
	}
	if len(invalid) > 0 {
		return Fail(fmt.Sprintf("properties %v do not satisfy their dependent schemas", invalid))
	}
	return Pass(nil)
}

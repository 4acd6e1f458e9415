package jsonschema

import (
	"fmt"
	"strings"
)

type typeEvaluator struct {
	types []string
}

// newTypeEvaluator compiles the `type` keyword: either a single type name
// or an array of unique type names.
func newTypeEvaluator(member JsonNode) (Evaluator, error) {
	switch member.Type() {
	case NodeString:
		return &typeEvaluator{types: []string{member.StringValue()}}, nil
	case NodeArray:
		names := make([]string, 0, len(member.ArrayValues()))
		for _, v := range member.ArrayValues() {
			names = append(names, v.StringValue())
		}
		return &typeEvaluator{types: names}, nil
	default:
		return nil, fmt.Errorf("%w: type must be a string or array of strings", ErrSchemaCompilation)
	}
}

func (e *typeEvaluator) Keyword() string { return "type" }

func (e *typeEvaluator) Evaluate(_ *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	actual := instanceTypeName(instance)
	for _, want := range e.types {
		if want == actual {
			return Pass(nil)
		}
		if want == "number" && actual == "integer" {
			return Pass(nil)
		}
	}
	return Fail(fmt.Sprintf("value is %s but should be %s", actual, strings.Join(e.types, ", ")))
}

// instanceTypeName reports the JSON Schema type name for instance,
// distinguishing "integer" from "number" the way `type` requires.
func instanceTypeName(instance JsonNode) string {
	switch instance.Type() {
	case NodeNull:
		return "null"
	case NodeBoolean:
		return "boolean"
	case NodeString:
		return "string"
	case NodeNumber:
		if instance.IsInteger() {
			return "integer"
		}
		return "number"
	case NodeArray:
		return "array"
	case NodeObject:
		return "object"
	default:
		return "unknown"
	}
}

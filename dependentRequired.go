package jsonschema

import "fmt"

type dependentRequiredEvaluator struct {
	requirements map[string][]string
}

// newDependentRequiredEvaluator compiles `dependentRequired`: when a named
// property is present, a fixed set of other properties must also be present.
func newDependentRequiredEvaluator(member JsonNode) (Evaluator, error) {
	if member.Type() != NodeObject {
		return nil, fmt.Errorf("%w: dependentRequired must be an object", ErrSchemaCompilation)
	}
	requirements := make(map[string][]string, len(member.ObjectKeys()))
	for _, name := range member.ObjectKeys() {
		listNode, _ := member.ObjectValue(name)
		if listNode.Type() != NodeArray {
			return nil, fmt.Errorf("%w: dependentRequired entries must be arrays", ErrSchemaCompilation)
		}
		props := make([]string, 0, len(listNode.ArrayValues()))
		for _, v := range listNode.ArrayValues() {
			if v.Type() != NodeString {
				return nil, fmt.Errorf("%w: dependentRequired entries must be strings", ErrSchemaCompilation)
			}
			props = append(props, v.StringValue())
		}
		requirements[name] = props
	}
	return &dependentRequiredEvaluator{requirements: requirements}, nil
}

func (e *dependentRequiredEvaluator) Keyword() string { return "dependentRequired" }

func (e *dependentRequiredEvaluator) Evaluate(_ *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeObject {
		return Pass(nil)
	}
	missing := make(map[string][]string)
	for propName, required := range e.requirements {
		if _, exists := instance.ObjectValue(propName); !exists {
			continue
		}
		for _, reqProp := range required {
			if _, exists := instance.ObjectValue(reqProp); !exists {
				missing[propName] = append(missing[propName], reqProp)
			}
		}
	}
	if len(missing) > 0 {
		return Fail(fmt.Sprintf("dependent required properties are missing: %v", missing))
	}
	return Pass(nil)
}

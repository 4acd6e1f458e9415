package jsonschema

import (
	"fmt"
	"math/big"
	"regexp"
	"unicode/utf8"
)

// numericEvaluator shares the "apply only to number instances" guard common
// to maximum/minimum/exclusiveMaximum/exclusiveMinimum/multipleOf.
type numericEvaluator struct {
	keyword string
	bound   *Rat
	check   func(value, bound *Rat) (bool, string)
}

func (e *numericEvaluator) Keyword() string { return e.keyword }

func (e *numericEvaluator) Evaluate(_ *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeNumber {
		return Pass(nil)
	}
	if ok, msg := e.check(instance.NumberValue(), e.bound); !ok {
		return Fail(msg)
	}
	return Pass(nil)
}

func requireNumber(member JsonNode, keyword string) (*Rat, error) {
	if member.Type() != NodeNumber {
		return nil, fmt.Errorf("%w: %s must be a number", ErrSchemaCompilation, keyword)
	}
	return member.NumberValue(), nil
}

func newMaximumEvaluator(member JsonNode) (Evaluator, error) {
	bound, err := requireNumber(member, "maximum")
	if err != nil {
		return nil, err
	}
	return &numericEvaluator{keyword: "maximum", bound: bound, check: func(v, b *Rat) (bool, string) {
		if v.Cmp(b.Rat) > 0 {
			return false, fmt.Sprintf("%s should be at most %s", FormatRat(v), FormatRat(b))
		}
		return true, ""
	}}, nil
}

func newMinimumEvaluator(member JsonNode) (Evaluator, error) {
	bound, err := requireNumber(member, "minimum")
	if err != nil {
		return nil, err
	}
	return &numericEvaluator{keyword: "minimum", bound: bound, check: func(v, b *Rat) (bool, string) {
		if v.Cmp(b.Rat) < 0 {
			return false, fmt.Sprintf("%s should be at least %s", FormatRat(v), FormatRat(b))
		}
		return true, ""
	}}, nil
}

func newExclusiveMaximumEvaluator(member JsonNode) (Evaluator, error) {
	bound, err := requireNumber(member, "exclusiveMaximum")
	if err != nil {
		return nil, err
	}
	return &numericEvaluator{keyword: "exclusiveMaximum", bound: bound, check: func(v, b *Rat) (bool, string) {
		if v.Cmp(b.Rat) >= 0 {
			return false, fmt.Sprintf("%s should be less than %s", FormatRat(v), FormatRat(b))
		}
		return true, ""
	}}, nil
}

func newExclusiveMinimumEvaluator(member JsonNode) (Evaluator, error) {
	bound, err := requireNumber(member, "exclusiveMinimum")
	if err != nil {
		return nil, err
	}
	return &numericEvaluator{keyword: "exclusiveMinimum", bound: bound, check: func(v, b *Rat) (bool, string) {
		if v.Cmp(b.Rat) <= 0 {
			return false, fmt.Sprintf("%s should be greater than %s", FormatRat(v), FormatRat(b))
		}
		return true, ""
	}}, nil
}

func newMultipleOfEvaluator(member JsonNode) (Evaluator, error) {
	divisor, err := requireNumber(member, "multipleOf")
	if err != nil {
		return nil, err
	}
	if divisor.Sign() <= 0 {
		return nil, fmt.Errorf("%w: multipleOf must be greater than 0", ErrSchemaCompilation)
	}
	return &numericEvaluator{keyword: "multipleOf", bound: divisor, check: func(v, b *Rat) (bool, string) {
		quotient := new(big.Rat).Quo(v.Rat, b.Rat)
		if !quotient.IsInt() {
			return false, fmt.Sprintf("%s should be a multiple of %s", FormatRat(v), FormatRat(b))
		}
		return true, ""
	}}, nil
}

// stringLengthEvaluator shares the shape of maxLength/minLength.
type stringLengthEvaluator struct {
	keyword string
	limit   int
	check   func(length, limit int) (bool, string)
}

func (e *stringLengthEvaluator) Keyword() string { return e.keyword }

func (e *stringLengthEvaluator) Evaluate(_ *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeString {
		return Pass(nil)
	}
	length := utf8.RuneCountInString(instance.StringValue())
	if ok, msg := e.check(length, e.limit); !ok {
		return Fail(msg)
	}
	return Pass(nil)
}

func requireNonNegativeInt(member JsonNode, keyword string) (int, error) {
	if member.Type() != NodeNumber || !member.IsInteger() {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", ErrSchemaCompilation, keyword)
	}
	n := member.NumberValue().Num().Int64() / member.NumberValue().Denom().Int64()
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", ErrSchemaCompilation, keyword)
	}
	return int(n), nil
}

func newMaxLengthEvaluator(member JsonNode) (Evaluator, error) {
	limit, err := requireNonNegativeInt(member, "maxLength")
	if err != nil {
		return nil, err
	}
	return &stringLengthEvaluator{keyword: "maxLength", limit: limit, check: func(length, limit int) (bool, string) {
		if length > limit {
			return false, fmt.Sprintf("value should be at most %d characters", limit)
		}
		return true, ""
	}}, nil
}

func newMinLengthEvaluator(member JsonNode) (Evaluator, error) {
	limit, err := requireNonNegativeInt(member, "minLength")
	if err != nil {
		return nil, err
	}
	return &stringLengthEvaluator{keyword: "minLength", limit: limit, check: func(length, limit int) (bool, string) {
		if length < limit {
			return false, fmt.Sprintf("value should be at least %d characters", limit)
		}
		return true, ""
	}}, nil
}

type patternEvaluator struct {
	raw string
	re  *regexp.Regexp
}

func newPatternEvaluator(member JsonNode) (Evaluator, error) {
	if member.Type() != NodeString {
		return nil, fmt.Errorf("%w: pattern must be a string", ErrSchemaCompilation)
	}
	raw := member.StringValue()
	re, err := regexp.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegexValidation, err)
	}
	return &patternEvaluator{raw: raw, re: re}, nil
}

func (e *patternEvaluator) Keyword() string { return "pattern" }

func (e *patternEvaluator) Evaluate(_ *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeString {
		return Pass(nil)
	}
	if !e.re.MatchString(instance.StringValue()) {
		return Fail(fmt.Sprintf("value does not match the required pattern %q", e.raw))
	}
	return Pass(nil)
}

// arraySizeEvaluator shares the shape of maxItems/minItems.
type arraySizeEvaluator struct {
	keyword string
	limit   int
	check   func(count, limit int) (bool, string)
}

func (e *arraySizeEvaluator) Keyword() string { return e.keyword }

func (e *arraySizeEvaluator) Evaluate(_ *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeArray {
		return Pass(nil)
	}
	count := len(instance.ArrayValues())
	if ok, msg := e.check(count, e.limit); !ok {
		return Fail(msg)
	}
	return Pass(nil)
}

func newMaxItemsEvaluator(member JsonNode) (Evaluator, error) {
	limit, err := requireNonNegativeInt(member, "maxItems")
	if err != nil {
		return nil, err
	}
	return &arraySizeEvaluator{keyword: "maxItems", limit: limit, check: func(count, limit int) (bool, string) {
		if count > limit {
			return false, fmt.Sprintf("value should have at most %d items", limit)
		}
		return true, ""
	}}, nil
}

func newMinItemsEvaluator(member JsonNode) (Evaluator, error) {
	limit, err := requireNonNegativeInt(member, "minItems")
	if err != nil {
		return nil, err
	}
	return &arraySizeEvaluator{keyword: "minItems", limit: limit, check: func(count, limit int) (bool, string) {
		if count < limit {
			return false, fmt.Sprintf("value should have at least %d items", limit)
		}
		return true, ""
	}}, nil
}

type uniqueItemsEvaluator struct {
	enabled bool
}

func newUniqueItemsEvaluator(member JsonNode) (Evaluator, error) {
	return &uniqueItemsEvaluator{enabled: member.Type() == NodeBoolean && member.BoolValue()}, nil
}

func (e *uniqueItemsEvaluator) Keyword() string { return "uniqueItems" }

func (e *uniqueItemsEvaluator) Evaluate(_ *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	if !e.enabled || instance.Type() != NodeArray {
		return Pass(nil)
	}
	items := instance.ArrayValues()
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if items[i].Equals(items[j]) {
				return Fail(fmt.Sprintf("items at index %d and %d are duplicates", i, j))
			}
		}
	}
	return Pass(nil)
}

// objectSizeEvaluator shares the shape of maxProperties/minProperties.
type objectSizeEvaluator struct {
	keyword string
	limit   int
	check   func(count, limit int) (bool, string)
}

func (e *objectSizeEvaluator) Keyword() string { return e.keyword }

func (e *objectSizeEvaluator) Evaluate(_ *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeObject {
		return Pass(nil)
	}
	count := len(instance.ObjectKeys())
	if ok, msg := e.check(count, e.limit); !ok {
		return Fail(msg)
	}
	return Pass(nil)
}

func newMaxPropertiesEvaluator(member JsonNode) (Evaluator, error) {
	limit, err := requireNonNegativeInt(member, "maxProperties")
	if err != nil {
		return nil, err
	}
	return &objectSizeEvaluator{keyword: "maxProperties", limit: limit, check: func(count, limit int) (bool, string) {
		if count > limit {
			return false, fmt.Sprintf("value should have at most %d properties", limit)
		}
		return true, ""
	}}, nil
}

func newMinPropertiesEvaluator(member JsonNode) (Evaluator, error) {
	limit, err := requireNonNegativeInt(member, "minProperties")
	if err != nil {
		return nil, err
	}
	return &objectSizeEvaluator{keyword: "minProperties", limit: limit, check: func(count, limit int) (bool, string) {
		if count < limit {
			return false, fmt.Sprintf("value should have at least %d properties", limit)
		}
		return true, ""
	}}, nil
}

type requiredEvaluator struct {
	props []string
}

func newRequiredEvaluator(member JsonNode) (Evaluator, error) {
	if member.Type() != NodeArray {
		return nil, fmt.Errorf("%w: required must be an array of strings", ErrSchemaCompilation)
	}
	props := make([]string, 0, len(member.ArrayValues()))
	for _, v := range member.ArrayValues() {
		props = append(props, v.StringValue())
	}
	return &requiredEvaluator{props: props}, nil
}

func (e *requiredEvaluator) Keyword() string { return "required" }

func (e *requiredEvaluator) Evaluate(_ *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeObject {
		return Pass(nil)
	}
	var missing []string
	for _, name := range e.props {
		if _, ok := instance.ObjectValue(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Fail(fmt.Sprintf("missing required properties: %v", missing))
	}
	return Pass(nil)
}

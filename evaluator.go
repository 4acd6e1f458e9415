package jsonschema

// EvaluationOutcome is the verdict an Evaluator reaches for one instance
// node: either success (with an optional annotation value to contribute to
// the evaluation context) or failure (with a human-readable message).
type EvaluationOutcome struct {
	Valid      bool
	Annotation any
	Message    string
}

// Pass reports success, optionally carrying an annotation value (e.g. the
// set of matched property names for `properties`).
func Pass(annotation any) EvaluationOutcome { return EvaluationOutcome{Valid: true, Annotation: annotation} }

// Fail reports failure with a human-readable message.
func Fail(message string) EvaluationOutcome { return EvaluationOutcome{Valid: false, Message: message} }

// Evaluator is a compiled keyword: given the shared evaluation context and
// the instance node at this schema's location, it decides validity and may
// contribute an annotation.
type Evaluator interface {
	// Keyword is the schema keyword this evaluator was compiled from, used
	// for error location reporting and unevaluated* bookkeeping.
	Keyword() string
	Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome
}

// EvalScope carries the per-application, schema-local bookkeeping that
// sibling keyword evaluators (properties / items / unevaluated*) read and
// write while a single Schema's evaluator list runs against one instance
// node. It is NOT part of EvaluationContext because it is rebuilt fresh for
// every (Schema, instance) pair rather than threaded across $ref boundaries.
type EvalScope struct {
	EvaluatedProps map[string]bool
	EvaluatedItems map[int]bool
	// AllItemsEvaluated is set when `items` or `unevaluatedItems` applied its
	// subschema to every remaining index (or a merged branch annotation says
	// so), short-circuiting unevaluatedItems. `contains` never sets it; it
	// records only its matching indices.
	AllItemsEvaluated bool
}

// NewEvalScope returns an empty EvalScope ready to accumulate annotations.
func NewEvalScope() *EvalScope {
	return &EvalScope{
		EvaluatedProps: make(map[string]bool),
		EvaluatedItems: make(map[int]bool),
	}
}

// MergeProps records names as evaluated in this scope.
func (s *EvalScope) MergeProps(names ...string) {
	for _, n := range names {
		s.EvaluatedProps[n] = true
	}
}

// MergeItems records indices as evaluated in this scope.
func (s *EvalScope) MergeItems(indices ...int) {
	for _, i := range indices {
		s.EvaluatedItems[i] = true
	}
}

// EvaluatorFactory compiles one keyword member of a schema object into an
// Evaluator. Returning (nil, false) means "I don't handle this keyword";
// the parser then asks the next factory in the chain. User factories
// compose in front of the engine's default factory.
type EvaluatorFactory interface {
	Create(pctx *parseContext, keyword string, member JsonNode, schemaNode JsonNode) (Evaluator, bool, error)
}

// EvaluatorFactoryFunc adapts a function to EvaluatorFactory.
type EvaluatorFactoryFunc func(pctx *parseContext, keyword string, member JsonNode, schemaNode JsonNode) (Evaluator, bool, error)

func (f EvaluatorFactoryFunc) Create(pctx *parseContext, keyword string, member JsonNode, schemaNode JsonNode) (Evaluator, bool, error) {
	return f(pctx, keyword, member, schemaNode)
}

// factoryChain tries each factory in order and returns the first match.
type factoryChain struct {
	factories []EvaluatorFactory
}

func newFactoryChain(factories ...EvaluatorFactory) *factoryChain {
	return &factoryChain{factories: factories}
}

func (c *factoryChain) Create(pctx *parseContext, keyword string, member JsonNode, schemaNode JsonNode) (Evaluator, bool, error) {
	for _, f := range c.factories {
		ev, ok, err := f.Create(pctx, keyword, member, schemaNode)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return ev, true, nil
		}
	}
	return nil, false, nil
}

// keywordPriority fixes the runtime evaluation order within one schema
// object: keywords producing annotations that later keywords consume run
// first. Keywords absent from this table (unknown / unrecognized) sort
// after everything listed, in the order the parser encountered them.
var keywordPriority = map[string]int{
	"$ref":                 0,
	"$dynamicRef":           1,
	"$recursiveRef":         2,
	"type":                 10,
	"enum":                 11,
	"const":                12,
	"multipleOf":            20,
	"maximum":              21,
	"exclusiveMaximum":     22,
	"minimum":              23,
	"exclusiveMinimum":     24,
	"maxLength":            25,
	"minLength":            26,
	"pattern":              27,
	"maxItems":             28,
	"minItems":             29,
	"uniqueItems":          30,
	"maxProperties":        31,
	"minProperties":        32,
	"required":             33,
	"properties":           40,
	"patternProperties":    41,
	"additionalProperties": 42,
	"propertyNames":        43,
	"items":                50,
	"prefixItems":          51,
	"contains":             52,
	"maxContains":          53,
	"minContains":          54,
	"allOf":                60,
	"anyOf":                61,
	"oneOf":                62,
	"not":                  63,
	"if":                   64,
	"then":                 65,
	"else":                 66,
	"dependentSchemas":     70,
	"dependentRequired":    71,
	"format":               80,
	"contentEncoding":      81,
	"contentMediaType":     82,
	"contentSchema":        83,
	"unevaluatedItems":     90,
	"unevaluatedProperties": 91,
}

func priorityOf(keyword string) int {
	if p, ok := keywordPriority[keyword]; ok {
		return p
	}
	return 1000
}

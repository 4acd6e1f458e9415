package jsonschema

// EvaluationError is one keyword failure, located by both the schema
// location that raised it and the instance location it was raised against.
type EvaluationError struct {
	SchemaLocation   string
	InstanceLocation string
	Keyword          string
	Message          string
}

// Annotation is one keyword's successful contribution, e.g. the set of
// property names `properties` matched, kept around for introspection and
// for feeding custom unevaluated*-style consumers.
type Annotation struct {
	SchemaLocation   string
	InstanceLocation string
	Keyword          string
	Value            any
}

// Result is the outcome of validating one instance against one schema:
// whether it was valid, one error per failing keyword of that schema (in
// evaluation order), and one annotation per passing keyword of that schema
// that produced a value. Failures inside subschemas are reported only through
// the message of the applicator keyword that reached them; they are not
// listed separately.
type Result struct {
	Valid       bool
	Errors      []EvaluationError
	Annotations []Annotation
}

// resultBuilder accumulates the errors/annotations of one Schema.Evaluate
// call; applicator keywords give each subschema evaluation its own builder.
type resultBuilder struct {
	errors      []EvaluationError
	annotations []Annotation
}

func newResultBuilder() *resultBuilder { return &resultBuilder{} }

func (b *resultBuilder) addError(schemaLocation, instanceLocation, keyword, message string) {
	b.errors = append(b.errors, EvaluationError{
		SchemaLocation:   schemaLocation,
		InstanceLocation: instanceLocation,
		Keyword:          keyword,
		Message:          message,
	})
}

func (b *resultBuilder) addAnnotation(schemaLocation, instanceLocation, keyword string, value any) {
	if value == nil {
		return
	}
	b.annotations = append(b.annotations, Annotation{
		SchemaLocation:   schemaLocation,
		InstanceLocation: instanceLocation,
		Keyword:          keyword,
		Value:            value,
	})
}

func (b *resultBuilder) build() Result {
	return Result{
		Valid:       len(b.errors) == 0,
		Errors:      b.errors,
		Annotations: b.annotations,
	}
}

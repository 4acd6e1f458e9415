package jsonschema

// Schema is the compiled representation of one schema document, object or
// boolean. Every Schema is reachable from its registry via at least one
// absolute URI.
type Schema struct {
	// baseURI is the $id scope this schema was declared under: its own $id
	// if it introduces one, otherwise the base URI it inherited.
	baseURI string

	// pointer is this schema's JSON Pointer location within its base
	// document.
	pointer string

	// absoluteURI is baseURI + "#" + pointer (just baseURI when pointer is
	// empty), this schema's canonical lookup key.
	absoluteURI string

	// boolValue is non-nil for a boolean schema (`true` or `false`), which
	// compiles to a constant-outcome shortcut instead of an evaluator list.
	boolValue *bool

	// evaluators is this schema's keyword evaluator list, sorted by
	// keywordPriority.
	evaluators []Evaluator

	// vocabularies is the set of vocabulary URIs active for this schema
	// (inherited from the nearest ancestor meta-schema root).
	vocabularies map[string]bool

	// source is the raw JsonNode this schema was compiled from, kept so the
	// resolver chain can reuse it without re-fetching.
	source JsonNode
}

// AbsoluteURI returns this schema's canonical "base#pointer" location.
func (s *Schema) AbsoluteURI() string { return s.absoluteURI }

// Evaluate runs this schema against instance, pushing itself onto the
// dynamic scope for the duration (so nested $dynamicRef/$recursiveRef can
// resolve against it) and checking for an evaluation loop first.
func (s *Schema) Evaluate(ctx *EvaluationContext, instance JsonNode, b *resultBuilder) bool {
	exit, ok := ctx.Enter(s.absoluteURI, instance.Pointer())
	if !ok {
		b.addError(s.absoluteURI, instance.Pointer(), "$ref", "infinite loop detected evaluating this schema against this instance location")
		return false
	}
	defer exit()

	if s.boolValue != nil {
		if *s.boolValue {
			return true
		}
		b.addError(s.absoluteURI, instance.Pointer(), "", "boolean schema false rejects every instance")
		return false
	}

	ctx.PushDynamic(s)
	defer ctx.PopDynamic()

	scope := NewEvalScope()
	valid := true
	for _, ev := range s.evaluators {
		outcome := ev.Evaluate(ctx, instance, scope)
		if outcome.Valid {
			b.addAnnotation(s.absoluteURI, instance.Pointer(), ev.Keyword(), outcome.Annotation)
			continue
		}
		valid = false
		b.addError(s.absoluteURI, instance.Pointer(), ev.Keyword(), outcome.Message)
	}
	return valid
}

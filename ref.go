package jsonschema

import "fmt"

// refEvaluator implements `$ref`: static resolution against the base URI in
// effect where the keyword appears. The target is looked up in the registry
// each time the evaluator runs; when it belongs to a document nothing has
// registered yet (e.g. a remote $ref satisfied only by a user
// SchemaResolver), that document is fetched and compiled on first use.
type refEvaluator struct {
	pctx   *parseContext
	target CompoundUri
}

func newRefEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	if member.Type() != NodeString {
		return nil, fmt.Errorf("%w: $ref must be a string", ErrSchemaCompilation)
	}
	uri, err := ParseCompoundURI(pctx.baseURI, member.StringValue())
	if err != nil {
		return nil, err
	}
	return &refEvaluator{pctx: pctx, target: uri}, nil
}

func (e *refEvaluator) Keyword() string { return "$ref" }

func (e *refEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	target, err := resolveSchemaAt(e.pctx, e.target)
	if err != nil {
		return Fail(fmt.Sprintf("$ref %q could not be resolved: %v", e.target.String(), err))
	}
	b := newResultBuilder()
	if !target.Evaluate(ctx, instance, b) {
		return Fail(fmt.Sprintf("value does not match the schema referenced by $ref %q", e.target.String()))
	}
	mergeAnnotationsIntoScope(b, scope)
	return Pass(nil)
}

// dynamicRefEvaluator implements `$dynamicRef`. Per the Draft 2020-12
// resolution algorithm: the ref is first resolved statically; if that static
// target is itself reachable as a `$dynamicAnchor` under its own base URI,
// the outermost schema in the current dynamic scope that declares the same
// anchor wins instead. Otherwise it behaves exactly like `$ref`.
type dynamicRefEvaluator struct {
	pctx   *parseContext
	target CompoundUri
}

func newDynamicRefEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	if member.Type() != NodeString {
		return nil, fmt.Errorf("%w: $dynamicRef must be a string", ErrSchemaCompilation)
	}
	uri, err := ParseCompoundURI(pctx.baseURI, member.StringValue())
	if err != nil {
		return nil, err
	}
	return &dynamicRefEvaluator{pctx: pctx, target: uri}, nil
}

func (e *dynamicRefEvaluator) Keyword() string { return "$dynamicRef" }

func (e *dynamicRefEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	target, err := resolveSchemaAt(e.pctx, e.target)
	if err != nil {
		return Fail(fmt.Sprintf("$dynamicRef %q could not be resolved: %v", e.target.String(), err))
	}

	if dynCandidate, ok := e.pctx.registry.GetDynamic(e.target); ok && dynCandidate != nil {
		if found := ctx.LookupDynamicAnchor(e.target.Fragment); found != nil {
			target = found
		}
	}

	b := newResultBuilder()
	if !target.Evaluate(ctx, instance, b) {
		return Fail(fmt.Sprintf("value does not match the schema referenced by $dynamicRef %q", e.target.String()))
	}
	mergeAnnotationsIntoScope(b, scope)
	return Pass(nil)
}

// recursiveRefEvaluator implements the legacy Draft 2019-09 `$recursiveRef`,
// kept for compatibility with schemas written against that draft: a plain
// "#" self-reference that, when the resolved root declared
// `$recursiveAnchor: true`, follows the outermost such root in the current
// dynamic scope instead of the statically resolved one.
type recursiveRefEvaluator struct {
	pctx   *parseContext
	target CompoundUri
}

func newRecursiveRefEvaluator(pctx *parseContext, member JsonNode) (Evaluator, error) {
	if member.Type() != NodeString {
		return nil, fmt.Errorf("%w: $recursiveRef must be a string", ErrSchemaCompilation)
	}
	uri, err := ParseCompoundURI(pctx.baseURI, member.StringValue())
	if err != nil {
		return nil, err
	}
	return &recursiveRefEvaluator{pctx: pctx, target: uri}, nil
}

func (e *recursiveRefEvaluator) Keyword() string { return "$recursiveRef" }

func (e *recursiveRefEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, scope *EvalScope) EvaluationOutcome {
	target, err := resolveSchemaAt(e.pctx, e.target)
	if err != nil {
		return Fail(fmt.Sprintf("$recursiveRef %q could not be resolved: %v", e.target.String(), err))
	}

	if root, ok := e.pctx.registry.GetDynamic(CompoundUri{BaseURI: target.baseURI, Fragment: ""}); ok && root == target {
		if found := ctx.LookupRecursiveAnchor(); found != nil {
			target = found
		}
	}

	b := newResultBuilder()
	if !target.Evaluate(ctx, instance, b) {
		return Fail(fmt.Sprintf("value does not match the schema referenced by $recursiveRef %q", e.target.String()))
	}
	mergeAnnotationsIntoScope(b, scope)
	return Pass(nil)
}

// resolveSchemaAt returns the Schema registered at uri, compiling the
// document it belongs to on first use if the resolver chain can still
// produce it (e.g. a remote $ref never explicitly pre-registered).
func resolveSchemaAt(pctx *parseContext, uri CompoundUri) (*Schema, error) {
	if s, ok := pctx.registry.Get(uri); ok {
		return s, nil
	}
	if s, ok := pctx.registry.GetDynamic(uri); ok {
		return s, nil
	}
	doc, found := pctx.resolver.resolve(uri.BaseURI)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, uri.BaseURI)
	}
	childPctx := pctx.child(uri.BaseURI, pctx.vocabularies)
	if _, err := ParseSchema(childPctx, doc); err != nil {
		return nil, err
	}
	if s, ok := pctx.registry.Get(uri); ok {
		return s, nil
	}
	if s, ok := pctx.registry.GetDynamic(uri); ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, uri.String())
}

package jsonschema

// loopKey identifies one (schema, instance-location) pair currently being
// evaluated, so a self-referential schema/instance pair can be detected
// before it recurses forever.
type loopKey struct {
	schemaURI        string
	instanceLocation string
}

// EvaluationContext is the transient, per-Validate-call state threaded
// through every evaluator invocation: the read-only registry view, the
// dynamic scope chain used by $dynamicRef/$recursiveRef, and the
// loop-detection stack. It is created fresh for every top-level Validate
// call and discarded when that call returns.
type EvaluationContext struct {
	registry     *SchemaRegistry
	dynamicScope []*Schema
	loopStack    map[loopKey]struct{}
	assertFormat bool
}

// NewEvaluationContext creates a fresh, empty EvaluationContext bound to the
// given registry.
func NewEvaluationContext(registry *SchemaRegistry, assertFormat bool) *EvaluationContext {
	return &EvaluationContext{
		registry:     registry,
		dynamicScope: make([]*Schema, 0, 8),
		loopStack:    make(map[loopKey]struct{}),
		assertFormat: assertFormat,
	}
}

// PushDynamic pushes a schema onto the dynamic scope before entering it via
// $ref/$dynamicRef/$recursiveRef, and must be paired with PopDynamic.
func (ctx *EvaluationContext) PushDynamic(s *Schema) { ctx.dynamicScope = append(ctx.dynamicScope, s) }

// PopDynamic removes the most recently pushed schema from the dynamic scope.
func (ctx *EvaluationContext) PopDynamic() {
	if len(ctx.dynamicScope) == 0 {
		return
	}
	ctx.dynamicScope = ctx.dynamicScope[:len(ctx.dynamicScope)-1]
}

// LookupDynamicAnchor walks the dynamic scope outermost-first looking for a
// schema whose base URI registered the given $dynamicAnchor name, per the
// Draft 2020-12 $dynamicRef resolution algorithm.
func (ctx *EvaluationContext) LookupDynamicAnchor(anchor string) *Schema {
	for _, s := range ctx.dynamicScope {
		if s.baseURI == "" {
			continue
		}
		if found := ctx.registry.getDynamicByBase(s.baseURI, anchor); found != nil {
			return found
		}
	}
	return nil
}

// LookupRecursiveAnchor walks the dynamic scope outermost-first for the
// first base URI whose root declared $recursiveAnchor: true (stored under
// the dynamic-anchor key ""), per the legacy Draft 2019-09 $recursiveRef
// algorithm.
func (ctx *EvaluationContext) LookupRecursiveAnchor() *Schema {
	for _, s := range ctx.dynamicScope {
		if s.baseURI == "" {
			continue
		}
		if found := ctx.registry.getDynamicByBase(s.baseURI, ""); found != nil {
			return found
		}
	}
	return nil
}

// Enter records that schemaURI is being evaluated against instanceLocation,
// returning false if that exact pair is already on the stack (an infinite
// loop). On success, the caller must call the returned exit func when done.
func (ctx *EvaluationContext) Enter(schemaURI, instanceLocation string) (exit func(), ok bool) {
	key := loopKey{schemaURI, instanceLocation}
	if _, seen := ctx.loopStack[key]; seen {
		return func() {}, false
	}
	ctx.loopStack[key] = struct{}{}
	return func() { delete(ctx.loopStack, key) }, true
}

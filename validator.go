package jsonschema

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
)

// Options configures a Validator at construction time.
type Options struct {
	// Dialect selects the meta-schema and default keyword factory. Defaults
	// to NewDraft2020Dialect().
	Dialect *Dialect

	// Resolver supplies schema documents for URIs the Validator was never
	// explicitly handed via RegisterSchema (remote $ref targets, alternate
	// meta-schemas). Optional.
	Resolver SchemaResolver

	// NodeFactory builds JsonNode trees from raw bytes or decoded values.
	// Defaults to NewNodeFactory().
	NodeFactory JsonNodeFactory

	// AssertFormat forces format-assertion semantics even when the active
	// dialect does not itself enable the format-assertion vocabulary.
	AssertFormat bool

	// DisableSchemaValidation skips meta-schema validation during
	// RegisterSchema, trading the "invalid schema is rejected up front"
	// guarantee for faster registration of schemas already known to be valid.
	DisableSchemaValidation bool

	// EvaluatorFactory, when set, is prepended to the factory chain ahead of
	// the dialect's default factory: it can shadow any keyword by returning
	// its own Evaluator, and anything it declines falls through to the
	// default factory.
	EvaluatorFactory EvaluatorFactory
}

// Validator is the façade over SchemaRegistry/SchemaParser/EvaluationContext:
// the entry point for registering schema documents and validating instances
// against them.
type Validator struct {
	// mu guards registry mutation: RegisterSchema takes the write lock for
	// its whole transactional parse, Validate takes a read lock only long
	// enough to look up the root Schema (evaluation itself touches no
	// mutable registry state).
	mu sync.RWMutex

	registry                *SchemaRegistry
	dialect                 *Dialect
	resolver                SchemaResolver
	nodeFactory             JsonNodeFactory
	assertFormat            bool
	disableSchemaValidation bool
	factory                 EvaluatorFactory

	formats    map[string]func(string) bool
	decoders   map[string]func(string) ([]byte, error)
	mediaTypes map[string]func([]byte) (JsonNode, error)
}

// NewValidator returns a Validator configured per opts, with the engine's
// built-in formats, content decoders, and media type parsers pre-registered.
func NewValidator(opts Options) *Validator {
	dialect := opts.Dialect
	if dialect == nil {
		dialect = NewDraft2020Dialect()
	}
	nodeFactory := opts.NodeFactory
	if nodeFactory == nil {
		nodeFactory = NewNodeFactory()
	}

	formats := make(map[string]func(string) bool, len(Formats))
	for k, v := range Formats {
		formats[k] = v
	}

	factory := dialect.DefaultFactory
	if opts.EvaluatorFactory != nil {
		factory = newFactoryChain(opts.EvaluatorFactory, dialect.DefaultFactory)
	}

	v := &Validator{
		registry:                NewSchemaRegistry(),
		dialect:                 dialect,
		resolver:                opts.Resolver,
		nodeFactory:             nodeFactory,
		assertFormat:            opts.AssertFormat || formatAssertionActive(dialect.Vocabularies),
		disableSchemaValidation: opts.DisableSchemaValidation,
		factory:                 factory,
		formats:                 formats,
		decoders: map[string]func(string) ([]byte, error){
			"base64": base64.StdEncoding.DecodeString,
		},
		mediaTypes: map[string]func([]byte) (JsonNode, error){
			"application/json": nodeFactory.Parse,
			"application/yaml": yamlToNode(nodeFactory),
			"text/yaml":        yamlToNode(nodeFactory),
		},
	}
	return v
}

func yamlToNode(nodeFactory JsonNodeFactory) func([]byte) (JsonNode, error) {
	return func(data []byte) (JsonNode, error) {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrYAMLUnmarshal, err)
		}
		return nodeFactory.FromValue(v)
	}
}

// RegisterFormat adds or overrides a named format validator.
func (v *Validator) RegisterFormat(name string, fn func(string) bool) {
	v.formats[name] = fn
}

// RegisterDecoder adds or overrides a `contentEncoding` decoder.
func (v *Validator) RegisterDecoder(name string, fn func(string) ([]byte, error)) {
	v.decoders[name] = fn
}

// RegisterMediaType adds or overrides a `contentMediaType` parser.
func (v *Validator) RegisterMediaType(name string, fn func([]byte) (JsonNode, error)) {
	v.mediaTypes[name] = fn
}

func (v *Validator) newParseContext(baseURI string) *parseContext {
	return &parseContext{
		registry:     v.registry,
		resolver:     newResolverChain(v.registry, v.resolver, v.nodeFactory),
		nodeFactory:  v.nodeFactory,
		factory:      v.factory,
		assertFormat: v.assertFormat,
		formats:      v.formats,
		decoders:     v.decoders,
		mediaTypes:   v.mediaTypes,
		baseURI:      baseURI,
		vocabularies: v.dialect.Vocabularies,
	}
}

// RegisterSchema compiles doc and registers it under uri, transactionally:
// the registry is snapshotted first and restored if either meta-schema
// validation or compilation fails, so a failed registration never leaves
// partial state behind.
func (v *Validator) RegisterSchema(uri string, doc JsonNode) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	snapshot := v.registry.CreateSnapshot()

	if !v.disableSchemaValidation {
		if err := v.validateAgainstMetaSchema(doc); err != nil {
			v.registry.RestoreSnapshot(snapshot)
			return err
		}
	}

	pctx := v.newParseContext(uri)
	if _, err := ParseSchema(pctx, doc); err != nil {
		v.registry.RestoreSnapshot(snapshot)
		return err
	}
	return nil
}

// RegisterSchemaFromBytes parses raw with the Validator's JsonNodeFactory
// (JSON text with the default factory) and registers it the same way as
// RegisterSchema.
func (v *Validator) RegisterSchemaFromBytes(uri string, raw []byte) error {
	doc, err := v.nodeFactory.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrJSONUnmarshal, err)
	}
	return v.RegisterSchema(uri, doc)
}

// RegisterAlias makes a second, read-only name resolve to an already
// registered schema document without re-parsing it.
func (v *Validator) RegisterAlias(originalURI, aliasURI string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.registry.RegisterAlias(originalURI, aliasURI)
}

func (v *Validator) validateAgainstMetaSchema(doc JsonNode) error {
	metaURI := v.dialect.GetMetaSchema()

	metaSchema := v.registry.GetByAbsoluteURI(metaURI)
	if metaSchema == nil {
		chain := newResolverChain(v.registry, v.resolver, v.nodeFactory)
		metaDoc, ok := chain.resolve(metaURI)
		if !ok {
			return &MetaSchemaResolvingException{URI: metaURI}
		}
		pctx := v.newParseContext(metaURI)
		pctx.assertFormat = false
		compiled, err := ParseSchema(pctx, metaDoc)
		if err != nil {
			return &MetaSchemaResolvingException{URI: metaURI, Cause: err}
		}
		metaSchema = compiled
	}

	ctx := NewEvaluationContext(v.registry, false)
	b := newResultBuilder()
	if !metaSchema.Evaluate(ctx, doc, b) {
		return &InvalidSchemaException{URI: metaURI, Errors: toSchemaErrors(b.errors)}
	}
	return nil
}

func toSchemaErrors(errs []EvaluationError) []SchemaError {
	out := make([]SchemaError, len(errs))
	for i, e := range errs {
		out[i] = SchemaError{Location: e.InstanceLocation, Message: e.Message}
	}
	return out
}

// Validate evaluates instance against the schema registered under uri.
func (v *Validator) Validate(uri string, instance JsonNode) (Result, error) {
	v.mu.RLock()
	schema := v.registry.GetByAbsoluteURI(uri)
	v.mu.RUnlock()
	if schema == nil {
		return Result{}, &SchemaNotFoundException{Ref: uri}
	}
	ctx := NewEvaluationContext(v.registry, v.assertFormat)
	b := newResultBuilder()
	schema.Evaluate(ctx, instance, b)
	return b.build(), nil
}

// ValidateBytes parses raw as an instance document and validates it against
// the schema registered under uri.
func (v *Validator) ValidateBytes(uri string, raw []byte) (Result, error) {
	instance, err := v.nodeFactory.Parse(raw)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrJSONUnmarshal, err)
	}
	return v.Validate(uri, instance)
}

// FormatReport renders a Result as a human-readable, color-coded report:
// green "valid" or red "invalid" followed by one line per error.
func FormatReport(result Result) string {
	if result.Valid {
		return color.GreenString("valid") + "\n"
	}
	out := color.RedString("invalid") + fmt.Sprintf(" (%d errors)\n", len(result.Errors))
	for _, e := range result.Errors {
		out += fmt.Sprintf("  %s %s: %s\n",
			color.YellowString(e.InstanceLocation),
			color.CyanString(e.Keyword),
			e.Message)
	}
	return out
}

package jsonschema

// ResolveResult is the outcome of a SchemaResolver.Resolve call: exactly one
// of its producing constructors below was used to build it, and IsEmpty
// reports whether none were (i.e. this resolver has nothing for that URI).
type ResolveResult struct {
	empty    bool
	raw      string
	node     JsonNode
	provider func() (JsonNode, error)
}

// EmptyResult reports that a resolver has nothing for the requested URI; the
// resolver chain moves on to the next resolver.
func EmptyResult() ResolveResult { return ResolveResult{empty: true} }

// FromString wraps a raw, not-yet-parsed schema document, later parsed by
// the Validator's JsonNodeFactory (JSON text with the default factory).
func FromString(raw string) ResolveResult { return ResolveResult{raw: raw} }

// FromNode wraps an already-parsed schema document.
func FromNode(node JsonNode) ResolveResult { return ResolveResult{node: node} }

// FromProvider wraps a lazily-evaluated schema document, fetched only if the
// caller actually needs it materialized.
func FromProvider(provider func() (JsonNode, error)) ResolveResult {
	return ResolveResult{provider: provider}
}

// IsEmpty reports whether this result carries no schema document.
func (r ResolveResult) IsEmpty() bool { return r.empty }

// Node materializes this result into a JsonNode, parsing raw text or
// invoking the provider as needed.
func (r ResolveResult) Node(factory JsonNodeFactory) (JsonNode, error) {
	switch {
	case r.empty:
		return nil, ErrSchemaNotFound
	case r.node != nil:
		return r.node, nil
	case r.provider != nil:
		return r.provider()
	case r.raw != "":
		return factory.Parse([]byte(r.raw))
	default:
		return nil, ErrSchemaNotFound
	}
}

// SchemaResolver maps an external URI to a schema document source. Supplying
// one lets a Validator pull in remote $ref / $schema targets that were never
// explicitly registered.
type SchemaResolver interface {
	Resolve(uri string) ResolveResult
}

// SchemaResolverFunc adapts a plain function to the SchemaResolver interface.
type SchemaResolverFunc func(uri string) ResolveResult

func (f SchemaResolverFunc) Resolve(uri string) ResolveResult { return f(uri) }

// resolverChain consults, in order: already-registered URIs (via the
// registry), the built-in resolver for known specification meta-schemas,
// then the user-supplied resolver. The first non-empty result wins.
type resolverChain struct {
	registry     *SchemaRegistry
	builtin      SchemaResolver
	user         SchemaResolver
	nodeFactory  JsonNodeFactory
}

func newResolverChain(registry *SchemaRegistry, user SchemaResolver, nodeFactory JsonNodeFactory) *resolverChain {
	return &resolverChain{
		registry:    registry,
		builtin:     builtinMetaSchemaResolver{},
		user:        user,
		nodeFactory: nodeFactory,
	}
}

// resolve returns the parsed document for uri, trying registered schemas,
// then the built-in meta-schema set, then the user resolver.
func (c *resolverChain) resolve(uri string) (JsonNode, bool) {
	if c.registry != nil {
		if s := c.registry.GetByAbsoluteURI(uri); s != nil && s.source != nil {
			return s.source, true
		}
	}
	if c.builtin != nil {
		if res := c.builtin.Resolve(uri); !res.IsEmpty() {
			if n, err := res.Node(c.nodeFactory); err == nil {
				return n, true
			}
		}
	}
	if c.user != nil {
		if res := c.user.Resolve(uri); !res.IsEmpty() {
			if n, err := res.Node(c.nodeFactory); err == nil {
				return n, true
			}
		}
	}
	return nil, false
}

package jsonschema

// Dialect bundles a meta-schema URI, the default evaluator factory used to
// compile schemas written against it, the set of vocabularies it recognizes,
// and the draft's specification version identifier.
type Dialect struct {
	// ID is the specification version identifier, e.g. "2020-12".
	ID string

	// MetaSchemaURI is the canonical URI of this dialect's root meta-schema.
	MetaSchemaURI string

	// Vocabularies maps vocabulary URI to whether it is required (true) or
	// optional (false), mirroring a meta-schema's own $vocabulary object.
	Vocabularies map[string]bool

	// DefaultFactory compiles keywords for schemas declaring this dialect.
	DefaultFactory EvaluatorFactory
}

// GetMetaSchema returns the URI this dialect resolves its meta-schema from,
// i.e. its MetaSchemaURI field. A custom meta-schema is selected by setting
// that field; the Validator holds a *Dialect and calls this method on it
// directly, so a method of the same name on a type embedding Dialect is not
// consulted. The engine resolves the URI through the normal SchemaResolver
// chain.
func (d *Dialect) GetMetaSchema() string { return d.MetaSchemaURI }

// HasVocabulary reports whether uri is among this dialect's known
// vocabularies (required or optional).
func (d *Dialect) HasVocabulary(uri string) bool {
	_, ok := d.Vocabularies[uri]
	return ok
}

// Known vocabulary URIs for Draft 2020-12, per the meta-schema's own
// $vocabulary declarations.
const (
	VocabCore             = "https://json-schema.org/draft/2020-12/vocab/core"
	VocabApplicator       = "https://json-schema.org/draft/2020-12/vocab/applicator"
	VocabUnevaluated      = "https://json-schema.org/draft/2020-12/vocab/unevaluated"
	VocabValidation       = "https://json-schema.org/draft/2020-12/vocab/validation"
	VocabMetaData         = "https://json-schema.org/draft/2020-12/vocab/meta-data"
	VocabFormatAnnotation = "https://json-schema.org/draft/2020-12/vocab/format-annotation"
	VocabFormatAssertion  = "https://json-schema.org/draft/2020-12/vocab/format-assertion"
	VocabContent          = "https://json-schema.org/draft/2020-12/vocab/content"

	Draft202012MetaSchemaURI = "https://json-schema.org/draft/2020-12/schema"
)

// NewDraft2020Dialect returns the built-in Draft 2020-12 dialect, wired to
// the engine's default keyword evaluator factory.
func NewDraft2020Dialect() *Dialect {
	return &Dialect{
		ID:            "2020-12",
		MetaSchemaURI: Draft202012MetaSchemaURI,
		Vocabularies: map[string]bool{
			VocabCore:             true,
			VocabApplicator:       true,
			VocabUnevaluated:      true,
			VocabValidation:       true,
			VocabMetaData:         false,
			VocabFormatAnnotation: false,
			VocabFormatAssertion:  false,
			VocabContent:          false,
		},
		DefaultFactory: NewDefaultEvaluatorFactory(),
	}
}

// formatAssertionActive reports whether a vocabulary set requests
// format-assertion semantics rather than plain format annotation.
func formatAssertionActive(activeVocabs map[string]bool) bool {
	if activeVocabs == nil {
		return false
	}
	return activeVocabs[VocabFormatAssertion]
}

package jsonschema

import _ "embed"

//go:embed metaschemas/2020-12.json
var draft202012MetaSchemaText string

// builtinMetaSchemaResolver answers resolve requests for the specification
// meta-schema URIs the engine ships with, independent of any user-supplied
// SchemaResolver or network access.
type builtinMetaSchemaResolver struct{}

func (builtinMetaSchemaResolver) Resolve(uri string) ResolveResult {
	base := getURIWithoutFragment(uri)
	switch base {
	case Draft202012MetaSchemaURI:
		return FromString(draft202012MetaSchemaText)
	default:
		return EmptyResult()
	}
}

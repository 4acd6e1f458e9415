package jsonschema

import (
	"fmt"
	"sort"
)

// parseContext carries everything SchemaParser needs while compiling one
// schema node: the current base URI scope, the active vocabulary set, and
// the collaborators (registry, resolver, node factory, evaluator factory)
// that keyword-specific compilation code needs to recurse or look things up.
type parseContext struct {
	registry     *SchemaRegistry
	resolver     *resolverChain
	nodeFactory  JsonNodeFactory
	factory      EvaluatorFactory
	assertFormat bool
	formats      map[string]func(string) bool
	decoders     map[string]func(string) ([]byte, error)
	mediaTypes   map[string]func([]byte) (JsonNode, error)

	baseURI      string
	parentURI    string
	vocabularies map[string]bool
}

// child returns a parseContext for a descendant node, overriding baseURI
// and/or vocabularies when the descendant introduced its own $id or
// $vocabulary declaration.
func (p *parseContext) child(baseURI string, vocabularies map[string]bool) *parseContext {
	cp := *p
	cp.parentURI = p.baseURI
	if baseURI != "" {
		cp.baseURI = baseURI
	}
	if vocabularies != nil {
		cp.vocabularies = vocabularies
	}
	return &cp
}

// ParseSchema compiles node (boolean or object) into a Schema, registering
// it (and any embedded/anchored descendants) into pctx.registry.
func ParseSchema(pctx *parseContext, node JsonNode) (*Schema, error) {
	if node.Type() == NodeBoolean {
		b := node.BoolValue()
		s := &Schema{
			baseURI:     pctx.baseURI,
			pointer:     node.Pointer(),
			absoluteURI: CompoundUri{BaseURI: pctx.baseURI, Fragment: node.Pointer()}.String(),
			boolValue:   &b,
			source:      node,
		}
		if err := pctx.registry.RegisterSchema(pctx.baseURI, node.Pointer(), s, nil, false); err != nil {
			return nil, err
		}
		return s, nil
	}
	if node.Type() != NodeObject {
		return nil, fmt.Errorf("%w: schema must be an object or boolean", ErrInvalidSchemaType)
	}

	ownBaseURI := pctx.baseURI
	embedsNewID := false
	if idNode, ok := node.ObjectValue("$id"); ok {
		id := idNode.StringValue()
		resolvedID := resolveRelativeURI(pctx.baseURI, id)
		if _, frag := SplitURIFragment(resolvedID); frag != "" {
			return nil, ErrInvalidIDFragment
		}
		if resolvedID != pctx.baseURI {
			ownBaseURI = resolvedID
			embedsNewID = true
		}
	}

	vocabularies := pctx.vocabularies
	if vocabNode, ok := node.ObjectValue("$vocabulary"); ok && vocabNode.Type() == NodeObject {
		active := make(map[string]bool, len(vocabNode.ObjectKeys()))
		for _, uri := range vocabNode.ObjectKeys() {
			v, _ := vocabNode.ObjectValue(uri)
			active[uri] = v.BoolValue()
		}
		vocabularies = active
	}

	childPctx := pctx.child(ownBaseURI, vocabularies)
	ownPointer := ""
	if !embedsNewID {
		ownPointer = node.Pointer()
	}

	s := &Schema{
		baseURI:      ownBaseURI,
		pointer:      ownPointer,
		absoluteURI:  CompoundUri{BaseURI: ownBaseURI, Fragment: ownPointer}.String(),
		vocabularies: vocabularies,
		source:       node,
	}

	anchors := make(map[string]bool)
	recursiveAnchorRoot := false
	if anchorNode, ok := node.ObjectValue("$anchor"); ok {
		anchors[anchorNode.StringValue()] = true
	}
	if dynAnchorNode, ok := node.ObjectValue("$dynamicAnchor"); ok {
		anchors[dynAnchorNode.StringValue()] = true
	}
	if recAnchorNode, ok := node.ObjectValue("$recursiveAnchor"); ok && recAnchorNode.BoolValue() {
		recursiveAnchorRoot = true
	}

	if defsNode, ok := node.ObjectValue("$defs"); ok && defsNode.Type() == NodeObject {
		for _, name := range defsNode.ObjectKeys() {
			defMember, _ := defsNode.ObjectValue(name)
			if _, err := parseSubschema(childPctx, defMember); err != nil {
				return nil, fmt.Errorf("%w: $defs/%s: %v", ErrSchemaCompilation, name, err)
			}
		}
	}

	keys := node.ObjectKeys()
	ordered := make([]string, len(keys))
	copy(ordered, keys)
	sort.SliceStable(ordered, func(i, j int) bool { return priorityOf(ordered[i]) < priorityOf(ordered[j]) })

	evaluators := make([]Evaluator, 0, len(ordered))
	for _, key := range ordered {
		if isStructuralKeyword(key) {
			continue
		}
		member, _ := node.ObjectValue(key)
		ev, handled, err := childPctx.factory.Create(childPctx, key, member, node)
		if err != nil {
			return nil, fmt.Errorf("%w: keyword %q: %v", ErrSchemaCompilation, key, err)
		}
		if handled && ev != nil {
			evaluators = append(evaluators, ev)
		}
	}
	s.evaluators = evaluators

	if embedsNewID {
		if err := pctx.registry.RegisterEmbeddedSchema(ownBaseURI, pctx.baseURI, node.Pointer(), s, anchors, recursiveAnchorRoot); err != nil {
			return nil, err
		}
	} else {
		if err := pctx.registry.RegisterSchema(ownBaseURI, ownPointer, s, anchors, recursiveAnchorRoot); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// isStructuralKeyword reports keywords the parser itself consumes directly
// (identity, anchors, vocabulary, documentation, and $defs' own recursion
// above) rather than dispatching to an EvaluatorFactory.
func isStructuralKeyword(key string) bool {
	switch key {
	case "$id", "$schema", "$anchor", "$dynamicAnchor", "$recursiveAnchor", "$vocabulary",
		"$comment", "$defs", "title", "description", "default", "deprecated",
		"readOnly", "writeOnly", "examples":
		return true
	default:
		return false
	}
}

// parseSubschema compiles a named member of the current node as a child
// schema under the same base URI and vocabularies, for keywords like
// `properties`/`items`/`allOf` that recurse into subschema-bearing members.
func parseSubschema(pctx *parseContext, member JsonNode) (*Schema, error) {
	return ParseSchema(pctx.child("", nil), member)
}

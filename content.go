package jsonschema

import "fmt"

// contentEvaluator implements the `contentEncoding`/`contentMediaType`/
// `contentSchema` trio together, since decoding must happen before media-type
// parsing, which must happen before contentSchema validates the result. Only
// one Evaluator is compiled per schema object (for whichever of the three
// keywords appears first by priority); the others are reported as consumed.
type contentEvaluator struct {
	keyword  string
	encoding string
	decode   func(string) ([]byte, error)

	mediaType string
	unmarshal func([]byte) (JsonNode, error)

	schema *Schema
}

func contentKeywordOrder() []string {
	return []string{"contentEncoding", "contentMediaType", "contentSchema"}
}

func firstContentKeyword(schemaNode JsonNode) string {
	for _, k := range contentKeywordOrder() {
		if _, ok := schemaNode.ObjectValue(k); ok {
			return k
		}
	}
	return ""
}

// newContentEvaluator compiles the content trio when keyword is whichever of
// the three keys appears first on schemaNode; for the others it returns nil
// (already consumed).
func newContentEvaluator(pctx *parseContext, keyword string, _ JsonNode, schemaNode JsonNode) (Evaluator, error) {
	if keyword != firstContentKeyword(schemaNode) {
		return nil, nil
	}

	ev := &contentEvaluator{keyword: keyword}

	if encNode, ok := schemaNode.ObjectValue("contentEncoding"); ok {
		if encNode.Type() != NodeString {
			return nil, fmt.Errorf("%w: contentEncoding must be a string", ErrSchemaCompilation)
		}
		name := encNode.StringValue()
		decode, ok := pctx.decoders[name]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported contentEncoding %q", ErrSchemaCompilation, name)
		}
		ev.encoding = name
		ev.decode = decode
	}

	if mtNode, ok := schemaNode.ObjectValue("contentMediaType"); ok {
		if mtNode.Type() != NodeString {
			return nil, fmt.Errorf("%w: contentMediaType must be a string", ErrSchemaCompilation)
		}
		name := mtNode.StringValue()
		unmarshal, ok := pctx.mediaTypes[name]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported contentMediaType %q", ErrSchemaCompilation, name)
		}
		ev.mediaType = name
		ev.unmarshal = unmarshal
	}

	if schemaNode2, ok := schemaNode.ObjectValue("contentSchema"); ok {
		compiled, err := parseSubschema(pctx, schemaNode2)
		if err != nil {
			return nil, err
		}
		ev.schema = compiled
	}

	return ev, nil
}

func (e *contentEvaluator) Keyword() string { return e.keyword }

func (e *contentEvaluator) Evaluate(ctx *EvaluationContext, instance JsonNode, _ *EvalScope) EvaluationOutcome {
	if instance.Type() != NodeString {
		return Pass(nil)
	}
	raw := instance.StringValue()

	content := []byte(raw)
	if e.decode != nil {
		decoded, err := e.decode(raw)
		if err != nil {
			return Fail(fmt.Sprintf("contentEncoding %q: %v", e.encoding, err))
		}
		content = decoded
	}

	if e.mediaType == "" && e.schema == nil {
		return Pass(nil)
	}

	var parsed JsonNode
	if e.unmarshal != nil {
		n, err := e.unmarshal(content)
		if err != nil {
			return Fail(fmt.Sprintf("contentMediaType %q: %v", e.mediaType, err))
		}
		parsed = n
	}

	if e.schema == nil {
		return Pass(nil)
	}
	if parsed == nil {
		n, err := NewNodeFactory().Parse(content)
		if err != nil {
			return Fail(fmt.Sprintf("contentSchema: content is not valid JSON: %v", err))
		}
		parsed = n
	}

	b := newResultBuilder()
	if !e.schema.Evaluate(ctx, parsed, b) {
		return Fail("decoded content does not match contentSchema")
	}
	return Pass(nil)
}

package jsonschema

import (
	"net/url"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// CompoundUri is a base URI (absolute, fragment-free) paired with a fragment,
// which is either a JSON Pointer (possibly empty) or a plain-name anchor.
type CompoundUri struct {
	BaseURI  string
	Fragment string
}

// IsJSONPointerFragment reports whether fragment looks like a JSON Pointer
// ("#/foo") rather than a plain anchor name ("#foo").
func IsJSONPointerFragment(fragment string) bool {
	return fragment == "" || strings.HasPrefix(fragment, "/")
}

// SplitURIFragment splits ref into (baseURI, fragment) on the first '#'.
func SplitURIFragment(ref string) (baseURI string, fragment string) {
	parts := strings.SplitN(ref, "#", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return ref, ""
}

// ParseCompoundURI parses a full reference string into a CompoundUri,
// resolving it against baseURI if it is relative.
func ParseCompoundURI(baseURI, ref string) (CompoundUri, error) {
	base, fragment := SplitURIFragment(ref)
	resolved := base
	if base == "" {
		resolved = getURIWithoutFragment(baseURI)
	} else if !isAbsoluteURI(base) {
		resolved = resolveRelativeURI(baseURI, base)
	}
	if resolved != "" && !isValidURI(resolved) {
		return CompoundUri{}, ErrInvalidRefKind
	}
	return CompoundUri{BaseURI: resolved, Fragment: fragment}, nil
}

// String renders the compound URI back to a "base#fragment" reference string.
func (c CompoundUri) String() string {
	if c.Fragment == "" {
		return c.BaseURI
	}
	return c.BaseURI + "#" + c.Fragment
}

// EscapeJSONPointerToken escapes a single JSON Pointer reference token:
// '~' -> "~0", '/' -> "~1".
func EscapeJSONPointerToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return token
}

// JoinPointer appends tokens to a JSON Pointer, escaping each token.
func JoinPointer(base string, tokens ...string) string {
	escaped := make([]string, len(tokens))
	for i, t := range tokens {
		escaped[i] = EscapeJSONPointerToken(t)
	}
	return jsonpointer.Format(append(splitPointerTokens(base), escaped...)...)
}

func splitPointerTokens(pointer string) []string {
	if pointer == "" || pointer == "/" {
		return nil
	}
	return jsonpointer.Parse(pointer)
}

// getURIWithoutFragment returns uri with any "#..." fragment removed.
func getURIWithoutFragment(uri string) string {
	base, _ := SplitURIFragment(uri)
	return base
}

// isValidURI verifies that s parses as an absolute URI or an absolute path
// (url.ParseRequestURI); other relative references are rejected.
func isValidURI(s string) bool {
	_, err := url.ParseRequestURI(s)
	return err == nil
}

// isAbsoluteURI reports whether urlStr has both a scheme and a host, or uses
// a scheme-only form such as "urn:...".
func isAbsoluteURI(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

// resolveRelativeURI resolves relativeURL against baseURI.
func resolveRelativeURI(baseURI, relativeURL string) string {
	if isAbsoluteURI(relativeURL) {
		return relativeURL
	}
	if baseURI == "" {
		return relativeURL
	}
	base, err := url.Parse(baseURI)
	if err != nil {
		return relativeURL
	}
	rel, err := url.Parse(relativeURL)
	if err != nil {
		return relativeURL
	}
	return base.ResolveReference(rel).String()
}

// getBaseURI derives a schema's base URI from its identifying $id: the
// fragment-free form of $id itself. RFC 3986 relative resolution already
// treats the final path segment as a "file name" to be replaced, so no
// additional directory-stripping is needed here.
func getBaseURI(id string) string {
	if id == "" {
		return ""
	}
	base, _ := SplitURIFragment(id)
	return base
}

// getURLScheme extracts the scheme component of a URL string.
func getURLScheme(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return parsed.Scheme
}

package jsonschema

import "errors"

// === URI / reference related errors ===
var (
	// ErrInvalidRefKind is returned when a URI cannot be split into base+fragment.
	ErrInvalidRefKind = errors.New("invalid reference uri")

	// ErrJSONPointerSegmentDecode is returned when a JSON Pointer segment cannot be decoded.
	ErrJSONPointerSegmentDecode = errors.New("json pointer segment decode failed")

	// ErrJSONPointerSegmentNotFound is returned when a JSON Pointer segment has no matching node.
	ErrJSONPointerSegmentNotFound = errors.New("json pointer segment not found")

	// ErrIPv6AddressNotEnclosed is returned when a URI host looks like an IPv6
	// address but is not wrapped in brackets.
	ErrIPv6AddressNotEnclosed = errors.New("ipv6 address must be enclosed in brackets")

	// ErrInvalidIPv6Address is returned when a bracketed URI host fails IPv6 parsing.
	ErrInvalidIPv6Address = errors.New("invalid ipv6 address")
)

// === Schema parsing related errors ===
var (
	// ErrSchemaCompilation is returned when a schema fails to parse.
	ErrSchemaCompilation = errors.New("schema compilation failed")

	// ErrInvalidSchemaType is returned when a schema document is neither an object nor a boolean.
	ErrInvalidSchemaType = errors.New("invalid schema type")

	// ErrInvalidIDFragment is returned when $id carries a non-empty fragment.
	ErrInvalidIDFragment = errors.New("$id must not carry a non-empty fragment")

	// ErrRegexValidation aggregates invalid regular expression patterns found while parsing.
	ErrRegexValidation = errors.New("invalid regular expression pattern")
)

// === Registry / resolution related errors ===
var (
	// ErrSchemaNotFound is returned when a URI has no registered schema.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrMetaSchemaUnresolvable is returned when a dialect's meta-schema cannot be obtained.
	ErrMetaSchemaUnresolvable = errors.New("meta-schema could not be resolved")

	// ErrNoLoaderRegistered is returned when no loader is registered for a URI scheme.
	ErrNoLoaderRegistered = errors.New("no loader registered for scheme")

	// ErrNetworkFetch is returned when a registered loader fails to fetch a resource.
	ErrNetworkFetch = errors.New("network fetch failed")

	// ErrInvalidStatusCode is returned when a loader receives a non-2xx response.
	ErrInvalidStatusCode = errors.New("invalid http status code")

	// ErrDataRead is returned when a fetched resource body cannot be read.
	ErrDataRead = errors.New("data read failed")
)

// === Serialization related errors ===
var (
	ErrJSONUnmarshal = errors.New("json unmarshal failed")
	ErrXMLUnmarshal  = errors.New("xml unmarshal failed")
	ErrYAMLUnmarshal = errors.New("yaml unmarshal failed")
)

// === Numeric conversion errors ===
var (
	ErrUnsupportedTypeForRat = errors.New("unsupported type for rational conversion")
	ErrFailedToConvertToRat  = errors.New("failed to convert value to rational")
)

// InvalidSchemaException is raised when a schema fails meta-schema validation.
// It aggregates every per-keyword violation found, and its presence means the
// registry was rolled back to the state it had before the failed RegisterSchema call.
type InvalidSchemaException struct {
	URI    string
	Errors []SchemaError
}

// SchemaError is one meta-schema validation violation.
type SchemaError struct {
	Location string
	Message  string
}

func (e *InvalidSchemaException) Error() string {
	msg := "invalid schema " + e.URI + ":"
	for _, se := range e.Errors {
		msg += " [" + se.Location + "] " + se.Message + ";"
	}
	return msg
}

// MetaSchemaResolvingException is raised when a dialect's meta-schema itself
// cannot be fetched or parsed.
type MetaSchemaResolvingException struct {
	URI   string
	Cause error
}

func (e *MetaSchemaResolvingException) Error() string {
	if e.Cause != nil {
		return "could not resolve meta-schema " + e.URI + ": " + e.Cause.Error()
	}
	return "could not resolve meta-schema " + e.URI
}

func (e *MetaSchemaResolvingException) Unwrap() error { return e.Cause }

// SchemaNotFoundException is raised by Validate(uri, ...) when uri names no
// registered schema. $ref misses encountered mid-evaluation are reported as
// evaluation failures instead, never as this exception.
type SchemaNotFoundException struct {
	Ref string
}

func (e *SchemaNotFoundException) Error() string {
	return "schema not found: " + e.Ref
}

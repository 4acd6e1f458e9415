package jsonschema

import (
	"math/big"
	"sort"
	"strconv"

	"github.com/go-json-experiment/json"
)

// NodeType tags the kind of value held by a JsonNode.
type NodeType int

const (
	NodeNull NodeType = iota
	NodeBoolean
	NodeString
	NodeNumber
	NodeArray
	NodeObject
)

func (t NodeType) String() string {
	switch t {
	case NodeNull:
		return "null"
	case NodeBoolean:
		return "boolean"
	case NodeString:
		return "string"
	case NodeNumber:
		return "number"
	case NodeArray:
		return "array"
	case NodeObject:
		return "object"
	default:
		return "unknown"
	}
}

// JsonNode is a node in an abstract, pluggable JSON tree. Every node knows
// its own JSON Pointer location within the document it was parsed from.
// Schema documents and instance documents are both represented this way.
type JsonNode interface {
	Type() NodeType
	Pointer() string

	BoolValue() bool
	StringValue() string
	NumberValue() *Rat
	// IsInteger reports whether a NodeNumber's mathematical value has a zero
	// fractional part. 1 and 1.0 both report true.
	IsInteger() bool

	ArrayValues() []JsonNode
	ObjectKeys() []string
	ObjectValue(key string) (JsonNode, bool)

	// Raw returns the underlying decoded Go value (nil, bool, string,
	// *Rat, []JsonNode-backing []any, or map[string]any). const/enum
	// comparison goes through Equals, not Raw.
	Raw() any

	// Equals implements the spec's mathematical-value equality: two numeric
	// nodes are equal iff their values are equal, and container equality is
	// structural.
	Equals(other JsonNode) bool
}

// JsonNodeFactory produces JsonNodes from raw JSON text or from a host value
// already decoded by the caller (e.g. an `any` tree from another library).
// This is an external collaborator: the core never tokenizes JSON itself.
type JsonNodeFactory interface {
	Parse(data []byte) (JsonNode, error)
	FromValue(v any) (JsonNode, error)
}

// node is the default JsonNode implementation, built over the standard
// decoded-JSON shape (nil/bool/string/float64/[]any/map[string]any) the way
// go-json-experiment/json (and encoding/json) produce it.
type node struct {
	typ     NodeType
	pointer string
	boolVal bool
	strVal  string
	numVal  *Rat
	arrVal  []JsonNode
	objVal  map[string]JsonNode
	objKeys []string
}

func (n *node) Type() NodeType      { return n.typ }
func (n *node) Pointer() string     { return n.pointer }
func (n *node) BoolValue() bool     { return n.boolVal }
func (n *node) StringValue() string { return n.strVal }
func (n *node) NumberValue() *Rat   { return n.numVal }

func (n *node) IsInteger() bool {
	if n.typ != NodeNumber || n.numVal == nil {
		return false
	}
	return n.numVal.IsInt()
}

func (n *node) ArrayValues() []JsonNode { return n.arrVal }

func (n *node) ObjectKeys() []string { return n.objKeys }

func (n *node) ObjectValue(key string) (JsonNode, bool) {
	v, ok := n.objVal[key]
	return v, ok
}

func (n *node) Raw() any {
	switch n.typ {
	case NodeNull:
		return nil
	case NodeBoolean:
		return n.boolVal
	case NodeString:
		return n.strVal
	case NodeNumber:
		return n.numVal
	case NodeArray:
		out := make([]any, len(n.arrVal))
		for i, v := range n.arrVal {
			out[i] = v.Raw()
		}
		return out
	case NodeObject:
		out := make(map[string]any, len(n.objVal))
		for k, v := range n.objVal {
			out[k] = v.Raw()
		}
		return out
	default:
		return nil
	}
}

func (n *node) Equals(other JsonNode) bool {
	if other == nil {
		return false
	}
	o, ok := other.(*node)
	if !ok {
		return nodesEqualGeneric(n, other)
	}
	return nodeEquals(n, o)
}

func nodeEquals(a, b *node) bool {
	// Numbers compare by mathematical value across number/integer distinction.
	if a.typ == NodeNumber && b.typ == NodeNumber {
		return a.numVal != nil && b.numVal != nil && a.numVal.Cmp(b.numVal.Rat) == 0
	}
	if a.typ != b.typ {
		return false
	}
	switch a.typ {
	case NodeNull:
		return true
	case NodeBoolean:
		return a.boolVal == b.boolVal
	case NodeString:
		return a.strVal == b.strVal
	case NodeArray:
		if len(a.arrVal) != len(b.arrVal) {
			return false
		}
		for i := range a.arrVal {
			if !a.arrVal[i].Equals(b.arrVal[i]) {
				return false
			}
		}
		return true
	case NodeObject:
		if len(a.objVal) != len(b.objVal) {
			return false
		}
		for k, v := range a.objVal {
			bv, ok := b.objVal[k]
			if !ok || !v.Equals(bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// nodesEqualGeneric compares against a JsonNode implementation other than
// our own *node, going through the exported accessor surface only.
func nodesEqualGeneric(a JsonNode, b JsonNode) bool {
	if a.Type() == NodeNumber && b.Type() == NodeNumber {
		return a.NumberValue() != nil && b.NumberValue() != nil && a.NumberValue().Cmp(b.NumberValue().Rat) == 0
	}
	if a.Type() != b.Type() {
		return false
	}
	switch a.Type() {
	case NodeNull:
		return true
	case NodeBoolean:
		return a.BoolValue() == b.BoolValue()
	case NodeString:
		return a.StringValue() == b.StringValue()
	case NodeArray:
		av, bv := a.ArrayValues(), b.ArrayValues()
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !av[i].Equals(bv[i]) {
				return false
			}
		}
		return true
	case NodeObject:
		ak, bk := a.ObjectKeys(), b.ObjectKeys()
		if len(ak) != len(bk) {
			return false
		}
		for _, k := range ak {
			av, ok1 := a.ObjectValue(k)
			bvv, ok2 := b.ObjectValue(k)
			if !ok1 || !ok2 || !av.Equals(bvv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// defaultNodeFactory builds JsonNode trees from decoded `any` values using
// go-json-experiment/json, the teacher's JSON codec of choice.
type defaultNodeFactory struct{}

// NewNodeFactory returns the engine's built-in JsonNodeFactory.
func NewNodeFactory() JsonNodeFactory { return defaultNodeFactory{} }

func (defaultNodeFactory) Parse(data []byte) (JsonNode, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return nodeFromValue(v, "")
}

func (defaultNodeFactory) FromValue(v any) (JsonNode, error) {
	return nodeFromValue(v, "")
}

func nodeFromValue(v any, pointer string) (JsonNode, error) {
	switch val := v.(type) {
	case nil:
		return &node{typ: NodeNull, pointer: pointer}, nil
	case bool:
		return &node{typ: NodeBoolean, pointer: pointer, boolVal: val}, nil
	case string:
		return &node{typ: NodeString, pointer: pointer, strVal: val}, nil
	case float64:
		return &node{typ: NodeNumber, pointer: pointer, numVal: NewRat(val)}, nil
	case int:
		return &node{typ: NodeNumber, pointer: pointer, numVal: NewRat(val)}, nil
	case *big.Rat:
		return &node{typ: NodeNumber, pointer: pointer, numVal: &Rat{val}}, nil
	case *Rat:
		return &node{typ: NodeNumber, pointer: pointer, numVal: val}, nil
	case []any:
		children := make([]JsonNode, len(val))
		for i, item := range val {
			child, err := nodeFromValue(item, JoinPointer(pointer, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return &node{typ: NodeArray, pointer: pointer, arrVal: children}, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		children := make(map[string]JsonNode, len(val))
		for _, k := range keys {
			child, err := nodeFromValue(val[k], JoinPointer(pointer, k))
			if err != nil {
				return nil, err
			}
			children[k] = child
		}
		return &node{typ: NodeObject, pointer: pointer, objVal: children, objKeys: keys}, nil
	default:
		return nil, ErrInvalidSchemaType
	}
}

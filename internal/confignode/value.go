package confignode

import "strings"

// Kind discriminates the variants of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindNode
	KindCallable
	KindList
	KindMap
)

// Value is a tagged union over the types a Node argument may hold. Exactly
// one payload field is meaningful for a given Kind.
type Value struct {
	Kind     Kind
	Bool     bool
	Number   float64
	Str      string
	Node     *Node
	Callable *CallableLiteral
	List     []Value
	Entries  []Entry // KindMap; order preserved
}

// CallableLiteral represents executable logic stored as data: either inline
// function source ("params -> expr") compiled at build time, or a reference
// to a class registered in the class registry. Exactly one field is set.
type CallableLiteral struct {
	Source   string
	ClassRef string
}

// IsFunction reports whether the literal carries inline function source.
func (c *CallableLiteral) IsFunction() bool { return c.Source != "" }

// IsClassRef reports whether the literal references a registered class.
func (c *CallableLiteral) IsClassRef() bool { return c.ClassRef != "" }

// Null returns the null Value.
func Null() Value { return Value{Kind: KindNull} }

// BoolVal wraps a boolean.
func BoolVal(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// NumberVal wraps a number. YAML integers and floats both land here.
func NumberVal(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// StringVal wraps a string.
func StringVal(s string) Value { return Value{Kind: KindString, Str: s} }

// NodeVal wraps a nested configuration node.
func NodeVal(n *Node) Value { return Value{Kind: KindNode, Node: n} }

// FunctionVal wraps inline callable source.
func FunctionVal(source string) Value {
	return Value{Kind: KindCallable, Callable: &CallableLiteral{Source: source}}
}

// ClassRefVal wraps a reference to a registered class.
func ClassRefVal(name string) Value {
	return Value{Kind: KindCallable, Callable: &CallableLiteral{ClassRef: name}}
}

// ListVal wraps a sequence of values.
func ListVal(vs ...Value) Value { return Value{Kind: KindList, List: vs} }

// MapVal wraps an ordered mapping of values.
func MapVal(entries ...Entry) Value { return Value{Kind: KindMap, Entries: entries} }

// StringsVal wraps a sequence of strings, a common shape for column lists.
func StringsVal(ss ...string) Value {
	vs := make([]Value, len(ss))
	for i, s := range ss {
		vs[i] = StringVal(s)
	}
	return ListVal(vs...)
}

// Equal reports structural equality of two values. Class-reference literals
// compare by referenced name; inline function literals compare by normalized
// source, since the round-trip contract only requires behavioral equivalence.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool == other.Bool
	case KindNumber:
		return v.Number == other.Number
	case KindString:
		return v.Str == other.Str
	case KindNode:
		return v.Node.Equal(other.Node)
	case KindCallable:
		if v.Callable.IsClassRef() != other.Callable.IsClassRef() {
			return false
		}
		if v.Callable.IsClassRef() {
			return v.Callable.ClassRef == other.Callable.ClassRef
		}
		return normalizeSource(v.Callable.Source) == normalizeSource(other.Callable.Source)
	case KindList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.Entries) != len(other.Entries) {
			return false
		}
		for i := range v.Entries {
			if v.Entries[i].Key != other.Entries[i].Key {
				return false
			}
			if !v.Entries[i].Value.Equal(other.Entries[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

func normalizeSource(src string) string {
	return strings.Join(strings.Fields(src), " ")
}

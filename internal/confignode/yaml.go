package confignode

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Reserved mapping keys that discriminate the YAML encoding of the Value sum
// type. A mapping carrying "class_name" is a nested Node; a single-key
// mapping of "function" or "class_ref" is a callable literal; anything else
// is a plain mapping value.
const (
	keyClassName = "class_name"
	keyArguments = "arguments"
	keyFunction  = "function"
	keyClassRef  = "class_ref"
)

// Parse decodes a YAML document into a configuration node tree.
func Parse(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse configuration document: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("configuration document must contain exactly one YAML document")
	}
	return decodeNode(doc.Content[0])
}

// Marshal encodes a configuration node tree as a YAML document, preserving
// argument order.
func Marshal(n *Node) ([]byte, error) {
	yn, err := encodeNode(n)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(yn)
}

// UnmarshalYAML implements yaml.Unmarshaler so a Node can appear as a field
// of a larger document struct.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	decoded, err := decodeNode(value)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (n *Node) MarshalYAML() (any, error) {
	return encodeNode(n)
}

func decodeNode(y *yaml.Node) (*Node, error) {
	if y.Kind == yaml.AliasNode {
		y = y.Alias
	}
	if y.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: a configuration node must be a mapping with a %q key", y.Line, keyClassName)
	}

	node := &Node{}
	var argsYAML *yaml.Node
	for i := 0; i < len(y.Content); i += 2 {
		key := y.Content[i].Value
		val := y.Content[i+1]
		switch key {
		case keyClassName:
			node.ClassName = val.Value
		case keyArguments:
			argsYAML = val
		default:
			return nil, fmt.Errorf("line %d: unexpected key %q in configuration node", y.Content[i].Line, key)
		}
	}
	if node.ClassName == "" {
		return nil, fmt.Errorf("line %d: configuration node is missing %q", y.Line, keyClassName)
	}

	if argsYAML != nil {
		if argsYAML.Kind == yaml.AliasNode {
			argsYAML = argsYAML.Alias
		}
		if argsYAML.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: %q must be a mapping", argsYAML.Line, keyArguments)
		}
		for i := 0; i < len(argsYAML.Content); i += 2 {
			name := argsYAML.Content[i].Value
			v, err := decodeValue(argsYAML.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("argument %q: %w", name, err)
			}
			node.args = append(node.args, Entry{Key: name, Value: v})
		}
	}
	return node, nil
}

func decodeValue(y *yaml.Node) (Value, error) {
	if y.Kind == yaml.AliasNode {
		y = y.Alias
	}
	switch y.Kind {
	case yaml.ScalarNode:
		return decodeScalar(y)
	case yaml.SequenceNode:
		list := make([]Value, 0, len(y.Content))
		for i, item := range y.Content {
			v, err := decodeValue(item)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			list = append(list, v)
		}
		return Value{Kind: KindList, List: list}, nil
	case yaml.MappingNode:
		return decodeMapping(y)
	default:
		return Value{}, fmt.Errorf("line %d: unsupported YAML node kind", y.Line)
	}
}

func decodeScalar(y *yaml.Node) (Value, error) {
	switch y.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return Value{}, err
		}
		return BoolVal(b), nil
	case "!!int", "!!float":
		var f float64
		if err := y.Decode(&f); err != nil {
			return Value{}, err
		}
		return NumberVal(f), nil
	default:
		return StringVal(y.Value), nil
	}
}

func decodeMapping(y *yaml.Node) (Value, error) {
	keys := make(map[string]bool, len(y.Content)/2)
	for i := 0; i < len(y.Content); i += 2 {
		keys[y.Content[i].Value] = true
	}

	if keys[keyClassName] {
		node, err := decodeNode(y)
		if err != nil {
			return Value{}, err
		}
		return NodeVal(node), nil
	}

	if len(keys) == 1 && (keys[keyFunction] || keys[keyClassRef]) {
		name := y.Content[0].Value
		val := y.Content[1]
		if val.Kind != yaml.ScalarNode || val.Value == "" {
			return Value{}, fmt.Errorf("line %d: %q must be a non-empty string", val.Line, name)
		}
		if name == keyFunction {
			return FunctionVal(val.Value), nil
		}
		return ClassRefVal(val.Value), nil
	}

	entries := make([]Entry, 0, len(y.Content)/2)
	for i := 0; i < len(y.Content); i += 2 {
		key := y.Content[i].Value
		v, err := decodeValue(y.Content[i+1])
		if err != nil {
			return Value{}, fmt.Errorf("%q: %w", key, err)
		}
		entries = append(entries, Entry{Key: key, Value: v})
	}
	return Value{Kind: KindMap, Entries: entries}, nil
}

func encodeNode(n *Node) (*yaml.Node, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	out.Content = append(out.Content, scalarString(keyClassName), scalarString(n.ClassName))

	if len(n.args) > 0 {
		args := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range n.args {
			v, err := encodeValue(e.Value)
			if err != nil {
				return nil, fmt.Errorf("argument %q: %w", e.Key, err)
			}
			args.Content = append(args.Content, scalarString(e.Key), v)
		}
		out.Content = append(out.Content, scalarString(keyArguments), args)
	}
	return out, nil
}

func encodeValue(v Value) (*yaml.Node, error) {
	switch v.Kind {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case KindBool:
		return encodeGo(v.Bool)
	case KindNumber:
		if v.Number == float64(int64(v.Number)) {
			return encodeGo(int64(v.Number))
		}
		return encodeGo(v.Number)
	case KindString:
		return scalarString(v.Str), nil
	case KindNode:
		return encodeNode(v.Node)
	case KindCallable:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if v.Callable.IsFunction() {
			out.Content = append(out.Content, scalarString(keyFunction), scalarString(v.Callable.Source))
		} else {
			out.Content = append(out.Content, scalarString(keyClassRef), scalarString(v.Callable.ClassRef))
		}
		return out, nil
	case KindList:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.List {
			y, err := encodeValue(item)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, y)
		}
		return out, nil
	case KindMap:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.Entries {
			y, err := encodeValue(e.Value)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", e.Key, err)
			}
			out.Content = append(out.Content, scalarString(e.Key), y)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown value kind %d", v.Kind)
}

func encodeGo(v any) (*yaml.Node, error) {
	var yn yaml.Node
	if err := yn.Encode(v); err != nil {
		return nil, err
	}
	return &yn, nil
}

func scalarString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
